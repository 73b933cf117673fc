package entity

import "time"

// CompanyInfo datos del emisor usados al renderizar documentos (registro único).
type CompanyInfo struct {
	Name                   string   `json:"name"`
	NIT                    string   `json:"nit"`
	SubscriptionEndDate    string   `json:"subscriptionEndDate"`
	FiscalResponsibilities []string `json:"fiscalResponsibilities"`
	Address                string   `json:"address"`
	City                   string   `json:"city"`
	Phone                  string   `json:"phone"`
	Email                  string   `json:"email"`
	ShowDianInfoInPDF      bool     `json:"showDianInfoInPdf"`
	LogoURL                string   `json:"logoUrl,omitempty"`
}

// DianResolution resolución de facturación vigente (registro único).
type DianResolution struct {
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	Prefix    string    `json:"prefix"`
	Validity  string    `json:"validity"` // ej. "24 meses"
	RangeFrom int64     `json:"rangeFrom"`
	RangeTo   int64     `json:"rangeTo"`
}
