package settings

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/pkg/textutil"
)

// Tipos de plantilla/importación.
const (
	KindClients  = "clients"
	KindProducts = "products"
)

var (
	clientColumns  = []string{"nombre", "tipo_identificacion", "numero_identificacion", "direccion", "telefono", "email", "responsabilidades"}
	productColumns = []string{"sku", "nombre", "descripcion", "tipo", "precio", "costo", "iva", "stock_inicial", "stock_minimo"}
)

// Template plantilla CSV (separador ';', como la exporta Excel en es-CO) con una fila de ejemplo.
func (uc *UseCase) Template(kind string) (content []byte, filename string, err error) {
	var rows [][]string
	switch kind {
	case KindClients:
		rows = [][]string{clientColumns, {"Constructora Andina S.A.S.", "NIT", "900.123.456-8", "Cra 45 # 10-20", "6041234567", "compras@andina.co", "O-13|O-15"}}
	case KindProducts:
		rows = [][]string{productColumns, {"CAB-001", "Cable THHN 12", "Rollo x 100 m", "product", "185000", "120000", "19", "10", "5"}}
	default:
		return nil, "", fmt.Errorf("%w: plantilla %q", domain.ErrInvalidInput, kind)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "plantilla_" + kind + ".csv", nil
}

// Import crea clientes o productos desde un CSV (UTF-8, Windows-1252 o ISO-8859-1; separador ';' o ',').
// Cada fila se crea por separado: los duplicados se omiten y las filas inválidas se reportan.
func (uc *UseCase) Import(ctx context.Context, kind string, raw []byte) (*dto.ImportResult, error) {
	var create func(ctx context.Context, row map[string]string) error
	switch kind {
	case KindClients:
		create = uc.importClient
	case KindProducts:
		create = uc.importProduct
	default:
		return nil, fmt.Errorf("%w: importación %q", domain.ErrInvalidInput, kind)
	}
	rows, err := readCSV(raw)
	if err != nil {
		return nil, err
	}
	res := &dto.ImportResult{}
	for i, row := range rows {
		line := i + 2 // la fila 1 es el encabezado
		err := create(ctx, row)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
		case errors.Is(err, domain.ErrInvalidInput):
			res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", line, err))
		default:
			return res, err
		}
	}
	uc.log.Info().Str("kind", kind).Int("created", res.Created).Int("skipped", res.Skipped).Int("errors", len(res.Errors)).Msg("importación CSV")
	return res, nil
}

// readCSV decodifica el archivo y devuelve cada fila indexada por el encabezado en minúsculas.
func readCSV(raw []byte) ([]map[string]string, error) {
	data, err := textutil.DecodeLegacy(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: codificación del archivo: %v", domain.ErrInvalidInput, err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectComma(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	var out []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if blank(rec) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func detectComma(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte{';'}) >= bytes.Count(first, []byte{','}) && bytes.IndexByte(first, ';') >= 0 {
		return ';'
	}
	return ','
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (uc *UseCase) importClient(ctx context.Context, row map[string]string) error {
	in := dto.ClientRequest{
		Name:     row["nombre"],
		IDType:   row["tipo_identificacion"],
		IDNumber: row["numero_identificacion"],
		Address:  row["direccion"],
		Phone:    row["telefono"],
		Email:    row["email"],
	}
	if resp := row["responsabilidades"]; resp != "" {
		for _, code := range strings.Split(resp, "|") {
			if code = strings.TrimSpace(code); code != "" {
				in.FiscalResponsibilities = append(in.FiscalResponsibilities, code)
			}
		}
	}
	_, err := uc.clients.Create(ctx, in)
	return err
}

func (uc *UseCase) importProduct(ctx context.Context, row map[string]string) error {
	price, err := parseAmount(row["precio"], "precio")
	if err != nil {
		return err
	}
	tax, err := parseAmount(row["iva"], "iva")
	if err != nil {
		return err
	}
	stock, err := parseAmount(row["stock_inicial"], "stock_inicial")
	if err != nil {
		return err
	}
	in := dto.CreateProductRequest{
		SKU:          row["sku"],
		Name:         row["nombre"],
		Description:  row["descripcion"],
		Type:         row["tipo"],
		Price:        price,
		TaxRate:      tax,
		InitialStock: stock,
	}
	if row["costo"] != "" {
		cost, err := parseAmount(row["costo"], "costo")
		if err != nil {
			return err
		}
		in.Cost = &cost
	}
	if row["stock_minimo"] != "" {
		n, err := strconv.Atoi(row["stock_minimo"])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: stock_minimo %q", domain.ErrInvalidInput, row["stock_minimo"])
		}
		in.LowStockThreshold = &n
	}
	_, err = uc.products.Create(ctx, in)
	return err
}

// parseAmount acepta "185000", "185000.50" y "185000,50"; vacío es cero.
func parseAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, field, s)
	}
	return v, nil
}
