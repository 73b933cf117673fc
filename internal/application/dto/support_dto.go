package dto

import "time"

// CreateTicketRequest body para POST /api/support/tickets.
type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// TicketResponse ticket de soporte.
type TicketResponse struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

// FaqResponse pregunta frecuente.
type FaqResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
