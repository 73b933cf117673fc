package ports

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función como unidad de trabajo, pasando repositorios atados a ella.
// Todo lo escrito en Run se confirma junto; si fn devuelve error no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
	// View ejecuta fn en solo lectura.
	View(ctx context.Context, fn func(repos repository.Set) error) error
}

// SlotExporter exporta el contenido completo del almacén (backup).
type SlotExporter interface {
	Export(ctx context.Context) (map[string]json.RawMessage, error)
}
