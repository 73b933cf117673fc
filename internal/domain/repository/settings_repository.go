package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// SettingsRepository registros únicos de configuración. Get devuelve nil si no existe.
type SettingsRepository interface {
	GetCompany(ctx context.Context) (*entity.CompanyInfo, error)
	SaveCompany(ctx context.Context, info *entity.CompanyInfo) error
	GetResolution(ctx context.Context) (*entity.DianResolution, error)
	SaveResolution(ctx context.Context, res *entity.DianResolution) error
}
