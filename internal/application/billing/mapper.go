package billing

import (
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func toLineItemResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, l := range items {
		out = append(out, dto.LineItemResponse{
			ProductID:   l.ProductID,
			ProductSKU:  l.ProductSKU,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Total:       l.Total,
		})
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                inv.ID,
		ClientID:          inv.ClientID,
		ClientName:        inv.ClientName,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		Items:             toLineItemResponses(inv.LineItems),
		Subtotal:          inv.Subtotal,
		TaxTotal:          inv.TaxTotal,
		Total:             inv.Total,
		Status:            string(inv.Status),
		PaymentForm:       inv.PaymentForm,
		PaymentMethod:     inv.PaymentMethod,
		GlobalDiscountPct: inv.GlobalDiscountPct,
		RetentionPct:      inv.RetentionPct,
		ICAPct:            inv.ICAPct,
		Notes:             inv.Notes,
		IsContingency:     inv.IsContingency,
		CUFE:              inv.AuthorizationCode,
	}
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:            q.ID,
		ClientID:      q.ClientID,
		ClientName:    q.ClientName,
		IssueDate:     q.IssueDate,
		Items:         toLineItemResponses(q.LineItems),
		Notes:         q.Notes,
		DiscountType:  q.DiscountType,
		DiscountValue: q.DiscountValue,
		Subtotal:      q.Subtotal,
		TotalDiscount: q.TotalDiscount,
		TaxTotal:      q.TaxTotal,
		Total:         q.Total,
		Status:        string(q.Status),
	}
}

func toCreditNoteResponse(n *entity.CreditNote) *dto.CreditNoteResponse {
	items := make([]dto.CreditNoteItemResponse, 0, len(n.LineItems))
	for _, l := range n.LineItems {
		items = append(items, dto.CreditNoteItemResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		})
	}
	return &dto.CreditNoteResponse{
		ID:              n.ID,
		InvoiceID:       n.InvoiceID,
		ClientID:        n.ClientID,
		ClientName:      n.ClientName,
		IssueDate:       n.IssueDate,
		Type:            n.Type,
		Reason:          n.Reason,
		Items:           items,
		Total:           n.Total,
		AdditionalNotes: n.AdditionalNotes,
		Status:          string(n.Status),
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	resp := &dto.ClientResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		IDType:                 c.IDType,
		IDNumber:               c.IDNumber,
		Address:                c.Address,
		Phone:                  c.Phone,
		Email:                  c.Email,
		FiscalResponsibilities: c.FiscalResponsibilities,
	}
	if resp.FiscalResponsibilities == nil {
		resp.FiscalResponsibilities = []string{}
	}
	return resp
}
