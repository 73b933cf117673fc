package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/ports"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	rules "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// DefaultCreditDays plazo de una factura a crédito cuando no se indica vencimiento.
const DefaultCreditDays = 30

// DocumentOptions reglas del ciclo de vida de documentos.
type DocumentOptions struct {
	StatusPolicy rules.StatusPolicy
	CreditDays   int
}

// DocumentUseCase administra facturas, cotizaciones y notas crédito/débito.
// Las colecciones solo se modifican a través de estas operaciones.
type DocumentUseCase struct {
	tx    ports.TxRunner
	sales SaleRecorder
	coder AuthorizationCoder
	opts  DocumentOptions
	log   *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	tx ports.TxRunner,
	sales SaleRecorder,
	coder AuthorizationCoder,
	opts DocumentOptions,
	log *logger.Logger,
) *DocumentUseCase {
	if opts.CreditDays <= 0 {
		opts.CreditDays = DefaultCreditDays
	}
	if opts.StatusPolicy == "" {
		opts.StatusPolicy = rules.PolicyPermissive
	}
	return &DocumentUseCase{
		tx:    tx,
		sales: sales,
		coder: coder,
		opts:  opts,
		log:   log.WithComponent("documents"),
	}
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// CreateInvoice crea la factura y descuenta el inventario en una sola unidad de trabajo.
// Si alguna línea falla (producto inexistente, stock insuficiente) no se guarda nada.
func (uc *DocumentUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		client, err := getClient(ctx, repos, in.ClientID)
		if err != nil {
			return err
		}
		lines, products, err := resolveLines(ctx, repos, in.Items)
		if err != nil {
			return err
		}
		now := time.Now()
		inv, err = uc.buildInvoice(in, client, lines, now)
		if err != nil {
			return err
		}
		return uc.insertInvoice(ctx, repos, inv, client, products, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("client_id", inv.ClientID).
		Str("total", inv.Total.String()).Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// buildInvoice arma la factura (sin ID) con valores por defecto y totales redondeados.
func (uc *DocumentUseCase) buildInvoice(in dto.CreateInvoiceRequest, client *entity.Client, lines []entity.LineItem, now time.Time) (*entity.Invoice, error) {
	status := entity.InvoiceStatus(in.Status)
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	form := in.PaymentForm
	if form == "" {
		form = entity.PaymentFormCash
	}
	if form != entity.PaymentFormCash && form != entity.PaymentFormCredit {
		return nil, fmt.Errorf("%w: forma de pago %q", domain.ErrInvalidInput, form)
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCash
	}
	switch method {
	case entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.PaymentMethodCard, entity.PaymentMethodOther:
	default:
		return nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, method)
	}
	for _, p := range []*decimal.Decimal{in.GlobalDiscountPct, in.RetentionPct, in.ICAPct} {
		if !validPercentage(p) {
			return nil, fmt.Errorf("%w: porcentaje fuera de rango", domain.ErrInvalidInput)
		}
	}

	issue := dateOnly(now)
	if in.IssueDate != nil {
		issue = dateOnly(*in.IssueDate)
	}
	due := issue
	if form == entity.PaymentFormCredit {
		due = issue.AddDate(0, 0, uc.opts.CreditDays)
	}
	if in.DueDate != nil {
		due = dateOnly(*in.DueDate)
	}
	if due.Before(issue) {
		return nil, fmt.Errorf("%w: el vencimiento es anterior a la fecha de emisión", domain.ErrInvalidInput)
	}

	totals := rules.CalculateInvoiceTotals(rules.LinesFrom(lines)).Round()
	return &entity.Invoice{
		ClientID:          client.ID,
		ClientName:        client.Name,
		IssueDate:         issue,
		DueDate:           due,
		LineItems:         lines,
		Subtotal:          totals.Subtotal,
		TaxTotal:          totals.Tax,
		Total:             totals.Total,
		Status:            status,
		PaymentForm:       form,
		PaymentMethod:     method,
		GlobalDiscountPct: in.GlobalDiscountPct,
		RetentionPct:      in.RetentionPct,
		ICAPct:            in.ICAPct,
		Notes:             in.Notes,
		IsContingency:     in.IsContingency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// insertInvoice asigna el consecutivo, el código de autorización si no es borrador,
// guarda la factura y registra una Venta por cada línea de bien físico.
func (uc *DocumentUseCase) insertInvoice(
	ctx context.Context,
	repos repository.Set,
	inv *entity.Invoice,
	client *entity.Client,
	products map[string]*entity.Product,
	now time.Time,
) error {
	existing, err := repos.Invoices.List(ctx)
	if err != nil {
		return err
	}
	inv.ID, err = repos.IDs.NextID(ctx, sequence.KindInvoice,
		sequence.IDsOf(existing, func(i *entity.Invoice) string { return i.ID }))
	if err != nil {
		return err
	}
	if inv.Status != entity.InvoiceStatusDraft {
		if err := uc.assignAuthorizationCode(ctx, repos, inv, client); err != nil {
			return err
		}
	}
	if err := repos.Invoices.Create(ctx, inv); err != nil {
		return err
	}
	for _, line := range inv.LineItems {
		product, ok := products[line.ProductID]
		if !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		if err := uc.sales.RegisterSaleInTx(ctx, repos, product, line.Quantity, inv.ID, now); err != nil {
			return err
		}
	}
	return nil
}

func (uc *DocumentUseCase) assignAuthorizationCode(ctx context.Context, repos repository.Set, inv *entity.Invoice, client *entity.Client) error {
	company, err := repos.Settings.GetCompany(ctx)
	if err != nil {
		return err
	}
	code, err := uc.coder.Code(ctx, inv, client, company)
	if err != nil {
		return fmt.Errorf("código de autorización: %w", err)
	}
	inv.AuthorizationCode = code
	return nil
}

// UpdateInvoiceStatus cambia el estado según la política configurada.
// Al salir de Borrador la factura recibe su código de autorización si aún no lo tiene.
func (uc *DocumentUseCase) UpdateInvoiceStatus(ctx context.Context, id, status string) (*dto.InvoiceResponse, error) {
	to := entity.InvoiceStatus(status)
	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		inv, err = repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := rules.CheckInvoiceTransition(uc.opts.StatusPolicy, inv.Status, to); err != nil {
			return err
		}
		if to != entity.InvoiceStatusDraft && inv.AuthorizationCode == "" {
			client, err := repos.Clients.GetByID(ctx, inv.ClientID)
			if err != nil {
				return err
			}
			if err := uc.assignAuthorizationCode(ctx, repos, inv, client); err != nil {
				return err
			}
		}
		inv.Status = to
		inv.UpdatedAt = time.Now()
		return repos.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// DeleteInvoice elimina la factura. El inventario descontado no se repone.
func (uc *DocumentUseCase) DeleteInvoice(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Invoices.Delete(ctx, id)
	})
}

// DuplicateInvoice crea un borrador con el cliente y las líneas de otra factura, con fecha de hoy
// y los precios vigentes. Pasa por CreateInvoice, así que vuelve a descontar inventario.
func (uc *DocumentUseCase) DuplicateInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	src, err := uc.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LineItemRequest, 0, len(src.Items))
	for _, it := range src.Items {
		items = append(items, dto.LineItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		ClientID:          src.ClientID,
		Items:             items,
		Status:            string(entity.InvoiceStatusDraft),
		PaymentForm:       src.PaymentForm,
		PaymentMethod:     src.PaymentMethod,
		GlobalDiscountPct: src.GlobalDiscountPct,
		RetentionPct:      src.RetentionPct,
		ICAPct:            src.ICAPct,
		Notes:             src.Notes,
	})
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *DocumentUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// InvoiceDocument datos de la factura con cliente, empresa y resolución para renderizar.
func (uc *DocumentUseCase) InvoiceDocument(ctx context.Context, id string) (*InvoiceDocument, error) {
	doc := &InvoiceDocument{}
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		if doc.Invoice, err = repos.Invoices.GetByID(ctx, id); err != nil {
			return err
		}
		if doc.Invoice == nil {
			return domain.ErrNotFound
		}
		if doc.Client, err = repos.Clients.GetByID(ctx, doc.Invoice.ClientID); err != nil {
			return err
		}
		if doc.Company, err = repos.Settings.GetCompany(ctx); err != nil {
			return err
		}
		doc.Resolution, err = repos.Settings.GetResolution(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *DocumentUseCase) loadInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		inv, err = repos.Invoices.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// ListInvoices lista facturas, la más reciente primero, con filtro opcional por cliente y estado.
func (uc *DocumentUseCase) ListInvoices(ctx context.Context, f dto.DocumentFilter) (*dto.InvoiceListResponse, error) {
	var list []*entity.Invoice
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Invoices.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	page, total := newestFirst(list, &f, func(i *entity.Invoice) bool {
		return (f.ClientID == "" || i.ClientID == f.ClientID) && (f.Status == "" || string(i.Status) == f.Status)
	})
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(page)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
	for _, inv := range page {
		out.Items = append(out.Items, *toInvoiceResponse(inv))
	}
	return out, nil
}

// ── Cotizaciones ──────────────────────────────────────────────────────────────

// CreateQuote crea una cotización en Borrador. No mueve inventario ni recibe código de autorización.
func (uc *DocumentUseCase) CreateQuote(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if in.DiscountType == "" {
		in.DiscountType = entity.DiscountTypePercentage
	}
	var quote *entity.Quote
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		client, err := getClient(ctx, repos, in.ClientID)
		if err != nil {
			return err
		}
		lines, _, err := resolveLines(ctx, repos, in.Items)
		if err != nil {
			return err
		}
		totals, err := rules.CalculateQuoteTotals(rules.LinesFrom(lines), rules.Discount{Type: in.DiscountType, Value: in.DiscountValue})
		if err != nil {
			return err
		}
		totals = totals.Round()

		existing, err := repos.Quotes.List(ctx)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindQuote,
			sequence.IDsOf(existing, func(q *entity.Quote) string { return q.ID }))
		if err != nil {
			return err
		}
		now := time.Now()
		issue := dateOnly(now)
		if in.IssueDate != nil {
			issue = dateOnly(*in.IssueDate)
		}
		quote = &entity.Quote{
			ID:            id,
			ClientID:      client.ID,
			ClientName:    client.Name,
			IssueDate:     issue,
			LineItems:     lines,
			Notes:         in.Notes,
			DiscountType:  in.DiscountType,
			DiscountValue: in.DiscountValue,
			Subtotal:      totals.Subtotal,
			TaxTotal:      totals.Tax,
			TotalDiscount: totals.Discount,
			Total:         totals.Total,
			Status:        entity.QuoteStatusDraft,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return repos.Quotes.Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// UpdateQuoteStatus cambia el estado de una cotización según la política configurada.
func (uc *DocumentUseCase) UpdateQuoteStatus(ctx context.Context, id, status string) (*dto.QuoteResponse, error) {
	to := entity.QuoteStatus(status)
	var quote *entity.Quote
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		quote, err = repos.Quotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if err := rules.CheckQuoteTransition(uc.opts.StatusPolicy, quote.Status, to); err != nil {
			return err
		}
		quote.Status = to
		quote.UpdatedAt = time.Now()
		return repos.Quotes.Update(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// ConvertQuoteToInvoice crea una factura en Borrador con las líneas y precios de la cotización
// y la marca como Aceptada, todo en la misma unidad de trabajo. El descuento de la cotización
// pasa a la factura como descuento global porcentual.
func (uc *DocumentUseCase) ConvertQuoteToInvoice(ctx context.Context, quoteID string, in dto.ConvertQuoteRequest) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		quote, err := repos.Quotes.GetByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if err := rules.CheckQuoteTransition(uc.opts.StatusPolicy, quote.Status, entity.QuoteStatusAccepted); err != nil {
			return err
		}
		client, err := getClient(ctx, repos, quote.ClientID)
		if err != nil {
			return err
		}
		products := make(map[string]*entity.Product, len(quote.LineItems))
		for _, line := range quote.LineItems {
			if _, ok := products[line.ProductID]; ok {
				continue
			}
			p, err := repos.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			products[line.ProductID] = p
		}

		req := dto.CreateInvoiceRequest{
			ClientID:      client.ID,
			DueDate:       in.DueDate,
			PaymentForm:   in.PaymentForm,
			PaymentMethod: in.PaymentMethod,
			Notes:         quote.Notes,
		}
		if pct := quoteDiscountPct(quote); pct.IsPositive() {
			req.GlobalDiscountPct = &pct
		}
		now := time.Now()
		lines := append([]entity.LineItem(nil), quote.LineItems...)
		inv, err = uc.buildInvoice(req, client, lines, now)
		if err != nil {
			return err
		}
		if err := uc.insertInvoice(ctx, repos, inv, client, products, now); err != nil {
			return err
		}
		quote.Status = entity.QuoteStatusAccepted
		quote.UpdatedAt = now
		return repos.Quotes.Update(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quote_id", quoteID).Str("invoice_id", inv.ID).Msg("cotización convertida en factura")
	return toInvoiceResponse(inv), nil
}

// quoteDiscountPct descuento de la cotización expresado como porcentaje del subtotal.
func quoteDiscountPct(q *entity.Quote) decimal.Decimal {
	if q.DiscountType == entity.DiscountTypeFixed {
		if !q.Subtotal.IsPositive() {
			return decimal.Zero
		}
		return q.TotalDiscount.Div(q.Subtotal).Mul(decimal.NewFromInt(100)).Round(4)
	}
	return q.DiscountValue
}

// DeleteQuote elimina la cotización.
func (uc *DocumentUseCase) DeleteQuote(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.Quotes.Delete(ctx, id)
	})
}

// GetQuote obtiene una cotización por ID.
func (uc *DocumentUseCase) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	doc, err := uc.QuoteDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(doc.Quote), nil
}

// QuoteDocument datos de la cotización para renderizar.
func (uc *DocumentUseCase) QuoteDocument(ctx context.Context, id string) (*QuoteDocument, error) {
	doc := &QuoteDocument{}
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		if doc.Quote, err = repos.Quotes.GetByID(ctx, id); err != nil {
			return err
		}
		if doc.Quote == nil {
			return domain.ErrNotFound
		}
		if doc.Client, err = repos.Clients.GetByID(ctx, doc.Quote.ClientID); err != nil {
			return err
		}
		doc.Company, err = repos.Settings.GetCompany(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListQuotes lista cotizaciones, la más reciente primero.
func (uc *DocumentUseCase) ListQuotes(ctx context.Context, f dto.DocumentFilter) (*dto.QuoteListResponse, error) {
	var list []*entity.Quote
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.Quotes.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	page, total := newestFirst(list, &f, func(q *entity.Quote) bool {
		return (f.ClientID == "" || q.ClientID == f.ClientID) && (f.Status == "" || string(q.Status) == f.Status)
	})
	out := &dto.QuoteListResponse{
		Items: make([]dto.QuoteResponse, 0, len(page)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
	for _, q := range page {
		out.Items = append(out.Items, *toQuoteResponse(q))
	}
	return out, nil
}

// ── Notas crédito / débito ────────────────────────────────────────────────────

// CreateCreditNote crea una nota sobre una factura existente. Copia las líneas y el total de la
// factura al momento de crearla; cambios posteriores de la factura no la afectan.
func (uc *DocumentUseCase) CreateCreditNote(ctx context.Context, in dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	if in.InvoiceID == "" || strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: factura y motivo requeridos", domain.ErrInvalidInput)
	}
	if in.Type == "" {
		in.Type = entity.CreditNoteTypeCredit
	}
	if !entity.ValidCreditNoteType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de nota %q", domain.ErrInvalidInput, in.Type)
	}
	var note *entity.CreditNote
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		inv, err := repos.Invoices.GetByID(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
		existing, err := repos.CreditNotes.List(ctx)
		if err != nil {
			return err
		}
		id, err := repos.IDs.NextID(ctx, sequence.KindCreditNote,
			sequence.IDsOf(existing, func(n *entity.CreditNote) string { return n.ID }))
		if err != nil {
			return err
		}
		items := make([]entity.CreditNoteLineItem, 0, len(inv.LineItems))
		for _, l := range inv.LineItems {
			items = append(items, entity.CreditNoteLineItem{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Total:       l.Total,
			})
		}
		now := time.Now()
		issue := dateOnly(now)
		if in.IssueDate != nil {
			issue = dateOnly(*in.IssueDate)
		}
		note = &entity.CreditNote{
			ID:              id,
			InvoiceID:       inv.ID,
			ClientID:        inv.ClientID,
			ClientName:      inv.ClientName,
			IssueDate:       issue,
			Type:            in.Type,
			Reason:          strings.TrimSpace(in.Reason),
			LineItems:       items,
			Total:           inv.Total,
			AdditionalNotes: in.AdditionalNotes,
			Status:          entity.CreditNoteStatusDraft,
			CreatedAt:       now,
		}
		return repos.CreditNotes.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(note), nil
}

// UpdateCreditNoteStatus cambia el estado de una nota según la política configurada.
func (uc *DocumentUseCase) UpdateCreditNoteStatus(ctx context.Context, id, status string) (*dto.CreditNoteResponse, error) {
	to := entity.CreditNoteStatus(status)
	var note *entity.CreditNote
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		var err error
		note, err = repos.CreditNotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		if err := rules.CheckCreditNoteTransition(uc.opts.StatusPolicy, note.Status, to); err != nil {
			return err
		}
		note.Status = to
		return repos.CreditNotes.Update(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(note), nil
}

// DeleteCreditNote elimina la nota.
func (uc *DocumentUseCase) DeleteCreditNote(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Set) error {
		return repos.CreditNotes.Delete(ctx, id)
	})
}

// GetCreditNote obtiene una nota por ID.
func (uc *DocumentUseCase) GetCreditNote(ctx context.Context, id string) (*dto.CreditNoteResponse, error) {
	doc, err := uc.CreditNoteDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(doc.Note), nil
}

// CreditNoteDocument datos de la nota para renderizar.
func (uc *DocumentUseCase) CreditNoteDocument(ctx context.Context, id string) (*CreditNoteDocument, error) {
	doc := &CreditNoteDocument{}
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		if doc.Note, err = repos.CreditNotes.GetByID(ctx, id); err != nil {
			return err
		}
		if doc.Note == nil {
			return domain.ErrNotFound
		}
		if doc.Client, err = repos.Clients.GetByID(ctx, doc.Note.ClientID); err != nil {
			return err
		}
		doc.Company, err = repos.Settings.GetCompany(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListCreditNotes lista notas, la más reciente primero.
func (uc *DocumentUseCase) ListCreditNotes(ctx context.Context, f dto.DocumentFilter) (*dto.CreditNoteListResponse, error) {
	var list []*entity.CreditNote
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		list, err = repos.CreditNotes.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	page, total := newestFirst(list, &f, func(n *entity.CreditNote) bool {
		return (f.ClientID == "" || n.ClientID == f.ClientID) && (f.Status == "" || string(n.Status) == f.Status)
	})
	out := &dto.CreditNoteListResponse{
		Items: make([]dto.CreditNoteResponse, 0, len(page)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
	for _, n := range page {
		out.Items = append(out.Items, *toCreditNoteResponse(n))
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func getClient(ctx context.Context, repos repository.Set, id string) (*entity.Client, error) {
	client, err := repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return client, nil
}

// resolveLines arma las líneas copiando SKU, nombre, precio e IVA vigentes del producto.
// Devuelve también los productos leídos para que el kardex trabaje sobre la misma instancia.
func resolveLines(ctx context.Context, repos repository.Set, items []dto.LineItemRequest) ([]entity.LineItem, map[string]*entity.Product, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	products := make(map[string]*entity.Product, len(items))
	lines := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || !it.Quantity.IsPositive() {
			return nil, nil, fmt.Errorf("%w: línea sin producto o con cantidad no positiva", domain.ErrInvalidInput)
		}
		if !it.Quantity.Equal(it.Quantity.Truncate(0)) {
			return nil, nil, fmt.Errorf("%w: la cantidad %s no es entera", domain.ErrInvalidInput, it.Quantity)
		}
		p, ok := products[it.ProductID]
		if !ok {
			var err error
			p, err = repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if p == nil {
				return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			products[it.ProductID] = p
		}
		lines = append(lines, entity.LineItem{
			ProductID:   p.ID,
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   p.Price,
			TaxRate:     p.TaxRate,
			Total:       it.Quantity.Mul(p.Price),
		})
	}
	if err := rules.ValidateLines(rules.LinesFrom(lines)); err != nil {
		return nil, nil, err
	}
	return lines, products, nil
}

// newestFirst filtra, invierte el orden de inserción y pagina. Devuelve la página y el total filtrado.
func newestFirst[T any](list []*T, f *dto.DocumentFilter, keep func(*T) bool) ([]*T, int) {
	f.DefaultPage()
	matched := make([]*T, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		if keep(list[i]) {
			matched = append(matched, list[i])
		}
	}
	from, to := f.Bounds(len(matched))
	return matched[from:to], len(matched)
}

func validPercentage(p *decimal.Decimal) bool {
	return p == nil || (!p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100)))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
