package entity

import "time"

// Tipos de identificación del cliente.
const (
	IDTypeNIT    = "NIT"
	IDTypeCedula = "Cédula"
	IDTypeOther  = "Otro"
)

// Client representa un cliente de la empresa. Los documentos guardan copia del nombre,
// por eso borrar un cliente no afecta facturas ni cotizaciones existentes.
type Client struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	IDType                 string    `json:"idType"`
	IDNumber               string    `json:"idNumber"`
	Address                string    `json:"address"`
	Phone                  string    `json:"phone"`
	Email                  string    `json:"email"`
	FiscalResponsibilities []string  `json:"fiscalResponsibilities"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ValidIDType indica si t es un tipo de identificación soportado.
func ValidIDType(t string) bool {
	switch t {
	case IDTypeNIT, IDTypeCedula, IDTypeOther:
		return true
	}
	return false
}
