package entity

import "time"

// Categorías de ticket de soporte.
const (
	TicketCategoryBilling   = "Facturación"
	TicketCategoryInventory = "Inventario"
	TicketCategoryBug       = "Reporte de Error"
	TicketCategoryQuestion  = "Duda General"
)

// Estados de ticket.
const (
	TicketStatusOpen       = "Abierto"
	TicketStatusInProgress = "En Proceso"
	TicketStatusResolved   = "Resuelto"
)

// SupportTicket solicitud de soporte.
type SupportTicket struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

// FaqItem pregunta frecuente.
type FaqItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ValidTicketCategory indica si c es una categoría conocida.
func ValidTicketCategory(c string) bool {
	switch c {
	case TicketCategoryBilling, TicketCategoryInventory, TicketCategoryBug, TicketCategoryQuestion:
		return true
	}
	return false
}

// ValidTicketStatus indica si s es un estado conocido.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}
