// Package settings agrupa la configuración de la empresa: datos del emisor, resolución de
// facturación, copia de seguridad e importación de clientes y productos.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

const backupVersion = 1

// UseCase casos de uso de configuración.
type UseCase struct {
	tx       ports.TxRunner
	exporter ports.SlotExporter
	clients  *billing.ClientUseCase
	products *inventory.ProductUseCase
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. clients y products se usan en la importación CSV.
func NewUseCase(tx ports.TxRunner, exporter ports.SlotExporter, clients *billing.ClientUseCase, products *inventory.ProductUseCase, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, exporter: exporter, clients: clients, products: products, log: log.WithComponent("settings")}
}

// GetCompany devuelve los datos del emisor (vacíos si aún no se han configurado).
func (uc *UseCase) GetCompany(ctx context.Context) (*dto.CompanyResponse, error) {
	var info *entity.CompanyInfo
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		info, err = repos.Settings.GetCompany(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &entity.CompanyInfo{}
	}
	return toCompanyResponse(info), nil
}

// UpdateCompany reemplaza los datos del emisor. Un NIT con dígito de verificación inválido
// se guarda igual y se informa como aviso.
func (uc *UseCase) UpdateCompany(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NIT = strings.TrimSpace(in.NIT)
	if in.Name == "" || in.NIT == "" {
		return nil, fmt.Errorf("%w: razón social y NIT requeridos", domain.ErrInvalidInput)
	}
	for _, code := range in.FiscalResponsibilities {
		if !dian.ValidFiscalResponsibility(code) {
			return nil, fmt.Errorf("%w: responsabilidad fiscal %q", domain.ErrInvalidInput, code)
		}
	}
	info := &entity.CompanyInfo{
		Name:                   in.Name,
		NIT:                    in.NIT,
		SubscriptionEndDate:    in.SubscriptionEndDate,
		FiscalResponsibilities: in.FiscalResponsibilities,
		Address:                in.Address,
		City:                   in.City,
		Phone:                  in.Phone,
		Email:                  in.Email,
		ShowDianInfoInPDF:      in.ShowDianInfoInPDF,
		LogoURL:                in.LogoURL,
	}
	if err := uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Settings.SaveCompany(ctx, info)
	}); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(info)
	if err := dian.ValidateNITVerificationDigit(info.NIT); err != nil {
		uc.log.Warn().Str("nit", info.NIT).Err(err).Msg("NIT del emisor con dígito de verificación inválido")
		resp.Warning = &dto.WarningResponse{Code: billing.WarningNITCheckDigit, Message: err.Error()}
	}
	return resp, nil
}

// GetResolution devuelve la resolución vigente o ErrNotFound.
func (uc *UseCase) GetResolution(ctx context.Context) (*dto.ResolutionResponse, error) {
	var res *entity.DianResolution
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		res, err = repos.Settings.GetResolution(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: resolución de facturación", domain.ErrNotFound)
	}
	return toResolutionResponse(res), nil
}

// UpdateResolution reemplaza la resolución de facturación.
func (uc *UseCase) UpdateResolution(ctx context.Context, in dto.ResolutionRequest) (*dto.ResolutionResponse, error) {
	in.Number = strings.TrimSpace(in.Number)
	in.Prefix = strings.ToUpper(strings.TrimSpace(in.Prefix))
	switch {
	case in.Number == "" || in.Prefix == "":
		return nil, fmt.Errorf("%w: número y prefijo requeridos", domain.ErrInvalidInput)
	case in.RangeFrom <= 0 || in.RangeTo < in.RangeFrom:
		return nil, fmt.Errorf("%w: rango de numeración %d-%d", domain.ErrInvalidInput, in.RangeFrom, in.RangeTo)
	}
	res := &entity.DianResolution{
		Number:    in.Number,
		Date:      in.Date,
		Prefix:    in.Prefix,
		Validity:  in.Validity,
		RangeFrom: in.RangeFrom,
		RangeTo:   in.RangeTo,
	}
	if err := uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Settings.SaveResolution(ctx, res)
	}); err != nil {
		return nil, err
	}
	return toResolutionResponse(res), nil
}

// Backup exporta todos los slots del almacén en un solo documento.
func (uc *UseCase) Backup(ctx context.Context, now time.Time) (*dto.BackupDocument, error) {
	slots, err := uc.exporter.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	uc.log.Info().Int("slots", len(slots)).Msg("copia de seguridad generada")
	return &dto.BackupDocument{Version: backupVersion, CreatedAt: now, Slots: slots}, nil
}

func toCompanyResponse(c *entity.CompanyInfo) *dto.CompanyResponse {
	resp := &dto.CompanyResponse{CompanyRequest: dto.CompanyRequest{
		Name:                   c.Name,
		NIT:                    c.NIT,
		SubscriptionEndDate:    c.SubscriptionEndDate,
		FiscalResponsibilities: c.FiscalResponsibilities,
		Address:                c.Address,
		City:                   c.City,
		Phone:                  c.Phone,
		Email:                  c.Email,
		ShowDianInfoInPDF:      c.ShowDianInfoInPDF,
		LogoURL:                c.LogoURL,
	}}
	if resp.FiscalResponsibilities == nil {
		resp.FiscalResponsibilities = []string{}
	}
	return resp
}

func toResolutionResponse(r *entity.DianResolution) *dto.ResolutionResponse {
	return &dto.ResolutionResponse{
		Number:    r.Number,
		Date:      r.Date,
		Prefix:    r.Prefix,
		Validity:  r.Validity,
		RangeFrom: r.RangeFrom,
		RangeTo:   r.RangeTo,
	}
}
