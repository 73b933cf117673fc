package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para UserAccount.
type UserRepository interface {
	Create(ctx context.Context, user *entity.UserAccount) error
	GetByID(ctx context.Context, id string) (*entity.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserAccount, error)
	Update(ctx context.Context, user *entity.UserAccount) error
	List(ctx context.Context) ([]*entity.UserAccount, error)
}

// ConnectionLogRepository registro de conexiones, el más reciente primero.
type ConnectionLogRepository interface {
	Prepend(ctx context.Context, entry *entity.ConnectionLog, keep int) error
	List(ctx context.Context, limit int) ([]*entity.ConnectionLog, error)
}
