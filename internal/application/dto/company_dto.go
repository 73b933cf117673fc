package dto

import (
	"encoding/json"
	"time"
)

// CompanyRequest body para PUT /api/settings/company.
type CompanyRequest struct {
	Name                   string   `json:"name"`
	NIT                    string   `json:"nit"`
	SubscriptionEndDate    string   `json:"subscription_end_date"`
	FiscalResponsibilities []string `json:"fiscal_responsibilities"`
	Address                string   `json:"address"`
	City                   string   `json:"city"`
	Phone                  string   `json:"phone"`
	Email                  string   `json:"email"`
	ShowDianInfoInPDF      bool     `json:"show_dian_info_in_pdf"`
	LogoURL                string   `json:"logo_url,omitempty"`
}

// CompanyResponse datos del emisor.
type CompanyResponse struct {
	CompanyRequest
	Warning *WarningResponse `json:"warning,omitempty"`
}

// ResolutionRequest body para PUT /api/settings/resolution.
type ResolutionRequest struct {
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	Prefix    string    `json:"prefix"`
	Validity  string    `json:"validity"`
	RangeFrom int64     `json:"range_from"`
	RangeTo   int64     `json:"range_to"`
}

// ResolutionResponse resolución de facturación vigente.
type ResolutionResponse = ResolutionRequest

// ImportResult resumen de una importación CSV.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// BackupDocument copia completa del almacén: un objeto JSON por slot.
type BackupDocument struct {
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	Slots     map[string]json.RawMessage `json:"slots"`
}
