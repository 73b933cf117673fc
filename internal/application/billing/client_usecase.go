package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
	"github.com/jhoicas/Facturacion-api/pkg/textutil"
)

// WarningNITCheckDigit código del aviso de dígito de verificación inválido.
const WarningNITCheckDigit = "NIT_CHECK_DIGIT"

// ClientUseCase casos de uso para clientes (facturación).
type ClientUseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(tx ports.TxRunner, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{tx: tx, log: log.WithComponent("clients")}
}

func normalizeClient(in *dto.ClientRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.IDNumber == "" {
		return fmt.Errorf("%w: nombre e identificación requeridos", domain.ErrInvalidInput)
	}
	if in.IDType == "" {
		in.IDType = entity.IDTypeNIT
	}
	if !entity.ValidIDType(in.IDType) {
		return fmt.Errorf("%w: tipo de identificación %q", domain.ErrInvalidInput, in.IDType)
	}
	for _, r := range in.FiscalResponsibilities {
		if !dian.ValidFiscalResponsibility(r) {
			return fmt.Errorf("%w: responsabilidad fiscal %q", domain.ErrInvalidInput, r)
		}
	}
	return nil
}

// nitWarning devuelve un aviso si el NIT no cumple el dígito de verificación. No bloquea la operación.
func (uc *ClientUseCase) nitWarning(c *entity.Client) *dto.WarningResponse {
	if c.IDType != entity.IDTypeNIT {
		return nil
	}
	if err := dian.ValidateNITVerificationDigit(c.IDNumber); err != nil {
		uc.log.Warn().Str("client_id", c.ID).Str("nit", c.IDNumber).Err(err).Msg("NIT con dígito de verificación inválido")
		return &dto.WarningResponse{Code: WarningNITCheckDigit, Message: err.Error()}
	}
	return nil
}

func findByIdentification(list []*entity.Client, idType, idNumber, exceptID string) *entity.Client {
	for _, c := range list {
		if c.ID != exceptID && c.IDType == idType && c.IDNumber == idNumber {
			return c
		}
	}
	return nil
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := normalizeClient(&in); err != nil {
		return nil, err
	}
	var client *entity.Client
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		list, err := repos.Clients.List(ctx)
		if err != nil {
			return err
		}
		if findByIdentification(list, in.IDType, in.IDNumber, "") != nil {
			return domain.ErrDuplicate
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindClient,
			sequence.IDsOf(list, func(c *entity.Client) string { return c.ID }))
		if err != nil {
			return err
		}
		now := time.Now()
		client = &entity.Client{
			ID:                     id,
			Name:                   in.Name,
			IDType:                 in.IDType,
			IDNumber:               in.IDNumber,
			Address:                in.Address,
			Phone:                  in.Phone,
			Email:                  in.Email,
			FiscalResponsibilities: in.FiscalResponsibilities,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		return repos.Clients.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	resp.Warning = uc.nitWarning(client)
	return resp, nil
}

// Update reemplaza los datos del cliente. Los documentos ya emitidos conservan el nombre anterior.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := normalizeClient(&in); err != nil {
		return nil, err
	}
	var client *entity.Client
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		client, err = repos.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		list, err := repos.Clients.List(ctx)
		if err != nil {
			return err
		}
		if findByIdentification(list, in.IDType, in.IDNumber, id) != nil {
			return domain.ErrDuplicate
		}
		client.Name = in.Name
		client.IDType = in.IDType
		client.IDNumber = in.IDNumber
		client.Address = in.Address
		client.Phone = in.Phone
		client.Email = in.Email
		client.FiscalResponsibilities = in.FiscalResponsibilities
		client.UpdatedAt = time.Now()
		return repos.Clients.Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	resp.Warning = uc.nitWarning(client)
	return resp, nil
}

// Delete elimina un cliente. Sus facturas y cotizaciones se conservan.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Clients.Delete(ctx, id)
	})
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	var client *entity.Client
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		client, err = repos.Clients.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes; query busca en nombre, identificación y email sin distinguir tildes.
func (uc *ClientUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	var list []*entity.Client
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Clients.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.Client, 0, len(list))
	for _, c := range list {
		if query == "" || textutil.Contains(c.Name, query) || textutil.Contains(c.IDNumber, query) || textutil.Contains(c.Email, query) {
			matched = append(matched, c)
		}
	}
	from, to := page.Bounds(len(matched))
	out := &dto.ClientListResponse{
		Items: make([]dto.ClientResponse, 0, to-from),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(matched)},
	}
	for _, c := range matched[from:to] {
		out.Items = append(out.Items, *toClientResponse(c))
	}
	return out, nil
}
