package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/jwt"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

const (
	// ConnectionLogKeep entradas que conserva el registro de conexiones.
	ConnectionLogKeep = 100
	minPasswordLen    = 6
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y cuentas de usuario.
type AuthUseCase struct {
	tx     ports.TxRunner
	jwtCfg JWTConfig
	log    *logger.Logger
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti → expiración del token
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		tx:      tx,
		jwtCfg:  jwtCfg,
		log:     log.WithComponent("auth"),
		now:     time.Now,
		revoked: map[string]time.Time{},
	}
}

// Login verifica email/password, registra la conexión y retorna token + usuario.
// Email desconocido y password incorrecto responden igual (ErrInvalidCredentials).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña requeridos", domain.ErrInvalidInput)
	}
	var user *entity.UserAccount
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		user, err = repos.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
			return domain.ErrInvalidCredentials
		}
		logs, err := repos.ConnectionLogs.List(ctx, 0)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindConnectionLog, sequence.IDsOf(logs, func(l *entity.ConnectionLog) string { return l.ID }))
		if err != nil {
			return err
		}
		return repos.ConnectionLogs.Prepend(ctx, &entity.ConnectionLog{
			ID:        id,
			UserEmail: user.Email,
			Timestamp: FormatConnectionTime(uc.now()),
		}, ConnectionLogKeep)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.log.Warn().Str("email", email).Msg("inicio de sesión rechazado")
		}
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("inicio de sesión")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *toUserResponse(user),
	}, nil
}

// Logout revoca el token identificado por jti hasta su expiración.
func (uc *AuthUseCase) Logout(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := uc.now()
	for k, exp := range uc.revoked {
		if exp.Before(now) {
			delete(uc.revoked, k)
		}
	}
	uc.revoked[jti] = expiresAt
}

// IsRevoked indica si el token fue cerrado con Logout.
func (uc *AuthUseCase) IsRevoked(jti string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.revoked[jti]
	return ok
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	var user *entity.UserAccount
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		user, err = repos.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword cambia la contraseña verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < minPasswordLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return domain.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
		return repos.Users.Update(ctx, user)
	})
}

// CreateUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.UserAccount{
		ID:           uuid.New().String(),
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    uc.now(),
	}
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		existing, err := repos.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lista los usuarios en orden de creación.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var users []*entity.UserAccount
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		users, err = repos.Users.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// ConnectionLogs devuelve hasta limit conexiones, la más reciente primero.
func (uc *AuthUseCase) ConnectionLogs(ctx context.Context, limit int) ([]dto.ConnectionLogResponse, error) {
	var logs []*entity.ConnectionLog
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		logs, err = repos.ConnectionLogs.List(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConnectionLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ConnectionLogResponse{ID: l.ID, UserEmail: l.UserEmail, Timestamp: l.Timestamp})
	}
	return out, nil
}

// EnsureAdmin crea el administrador inicial cuando no hay ningún usuario. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	var count int
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		users, err := repos.Users.List(ctx)
		count = len(users)
		return err
	})
	if err != nil || count > 0 {
		return false, err
	}
	if _, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: email, Password: password, Role: entity.RoleAdmin}); err != nil {
		return false, fmt.Errorf("crear administrador inicial: %w", err)
	}
	uc.log.Info().Str("email", email).Msg("administrador inicial creado")
	return true, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var bogota = func() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}()

// FormatConnectionTime fecha y hora en formato es-CO, ej: "16/10/2026, 3:04:05 p. m.".
func FormatConnectionTime(t time.Time) string {
	t = t.In(bogota)
	suffix := "a. m."
	if t.Hour() >= 12 {
		suffix = "p. m."
	}
	return t.Format("02/01/2006, 3:04:05") + " " + suffix
}

func toUserResponse(u *entity.UserAccount) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
