package dian

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/dian"
)

// Modos de código de autorización (BILLING_AUTHORIZATION_MODE).
const (
	ModeRandom = "random"
	ModeCUFE   = "cufe"
)

// RandomAuthorizationCoder código simulado: 48 bytes aleatorios en hexadecimal (96 caracteres).
type RandomAuthorizationCoder struct{}

// NewRandomAuthorizationCoder crea el servicio.
func NewRandomAuthorizationCoder() *RandomAuthorizationCoder {
	return &RandomAuthorizationCoder{}
}

// Code implementa billing.AuthorizationCoder.
func (RandomAuthorizationCoder) Code(_ context.Context, _ *entity.Invoice, _ *entity.Client, _ *entity.CompanyInfo) (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("dian: generar código de autorización: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CufeAuthorizationCoder calcula el CUFE (SHA-384) de la factura con la clave técnica de la resolución.
type CufeAuthorizationCoder struct {
	technicalKey string
	environment  string // "1" producción, "2" pruebas
	calc         *dian.CufeCalculatorService
}

// NewCufeAuthorizationCoder crea el servicio.
func NewCufeAuthorizationCoder(technicalKey, environment string) *CufeAuthorizationCoder {
	return &CufeAuthorizationCoder{technicalKey: technicalKey, environment: environment, calc: dian.NewCufeCalculatorService()}
}

// Code implementa billing.AuthorizationCoder. Requiere la empresa configurada y el cliente.
// ValFac = subtotal, ValIVA = IVA; INC e ICA en 0 (el ICA de la factura es una retención, no un impuesto cobrado).
func (c *CufeAuthorizationCoder) Code(_ context.Context, inv *entity.Invoice, client *entity.Client, company *entity.CompanyInfo) (string, error) {
	if inv == nil || client == nil || company == nil {
		return "", errors.New("dian: se requieren factura, empresa y cliente para calcular el CUFE")
	}
	return c.calc.Calculate(&dian.CufeParams{
		NumFac:  inv.ID,
		FecFac:  inv.IssueDate.Format("2006-01-02"),
		ValFac:  inv.Subtotal,
		ValIVA:  inv.TaxTotal,
		ValINC:  decimal.Zero,
		ValICA:  decimal.Zero,
		ValPag:  inv.Total,
		NitOfe:  company.NIT,
		DocAdq:  client.IDNumber,
		ClTec:   c.technicalKey,
		TipoAmb: c.environment,
	})
}

// NewAuthorizationCoder elige la implementación según el modo configurado.
func NewAuthorizationCoder(mode, technicalKey, environment string) (billing.AuthorizationCoder, error) {
	switch mode {
	case "", ModeRandom:
		return NewRandomAuthorizationCoder(), nil
	case ModeCUFE:
		if technicalKey == "" {
			return nil, errors.New("dian: el modo cufe requiere DIAN_TECHNICAL_KEY")
		}
		return NewCufeAuthorizationCoder(technicalKey, environment), nil
	default:
		return nil, fmt.Errorf("dian: modo de autorización desconocido %q", mode)
	}
}
