package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Range filtro de fechas de los reportes. Un extremo nil no limita; End incluye el día completo.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange interpreta start_date / end_date (YYYY-MM-DD).
func ParseRange(in dto.ReportRequest) (Range, error) {
	var r Range
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return Range{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
		r.Start = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return Range{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
		}
		r.End = &t
	}
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return Range{}, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	return r, nil
}

// Contains compara solo la fecha (año, mes, día) de t contra los extremos.
func (r Range) Contains(t time.Time) bool {
	day := civil(t)
	if r.Start != nil && day < civil(*r.Start) {
		return false
	}
	if r.End != nil && day > civil(*r.End) {
		return false
	}
	return true
}

// Period representación del rango para las respuestas.
func (r Range) Period() dto.PeriodDTO {
	var p dto.PeriodDTO
	if r.Start != nil {
		p.StartDate = r.Start.Format(dateLayout)
	}
	if r.End != nil {
		p.EndDate = r.End.Format(dateLayout)
	}
	return p
}

// civil fecha como entero comparable AAAAMMDD, independiente de la zona horaria del time.Time.
func civil(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// daysBetween días calendario de a hasta b (negativo si b es anterior).
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
