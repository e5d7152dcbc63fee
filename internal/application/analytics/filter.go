package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// UnknownValue selecciona las filas sin país o sin grupo (cliente ausente del registro).
const UnknownValue = "Unknown"

// Tipos de cliente derivados del número.
const (
	CustomerTypePrivate  = "private"
	CustomerTypeBusiness = "business"
)

// Filter criterios ya validados. Campos vacíos no filtran.
type Filter struct {
	From         time.Time
	To           time.Time
	Country      string
	Group        string
	CustomerType string
	Customer     string
	ArticleID    string
}

// ParseFilter valida las fechas y el tipo de cliente.
func ParseFilter(req dto.SalesFilterRequest) (Filter, error) {
	f := Filter{
		Country:   strings.TrimSpace(req.Country),
		Group:     strings.TrimSpace(req.Group),
		Customer:  strings.TrimSpace(req.Customer),
		ArticleID: strings.TrimSpace(req.ArticleID),
	}
	var err error
	if f.From, err = parseDate(req.From, "from"); err != nil {
		return Filter{}, err
	}
	if f.To, err = parseDate(req.To, "to"); err != nil {
		return Filter{}, err
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		f.From, f.To = f.To, f.From
	}
	switch ct := strings.ToLower(strings.TrimSpace(req.CustomerType)); ct {
	case "", "all":
	case CustomerTypePrivate, CustomerTypeBusiness:
		f.CustomerType = ct
	default:
		return Filter{}, fmt.Errorf("%w: customer_type debe ser private o business", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseDate(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// Match indica si la fila cumple todos los criterios.
func (f Filter) Match(r entity.SalesRow) bool {
	d := r.Date.UTC().Truncate(24 * time.Hour)
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.After(f.To) {
		return false
	}
	if f.Country != "" && !matchOptional(r.Country, f.Country) {
		return false
	}
	if f.Group != "" && !matchOptional(r.CustomerGroup, f.Group) {
		return false
	}
	switch f.CustomerType {
	case CustomerTypePrivate:
		if !entity.IsPrivate(r.CustomerNumber) {
			return false
		}
	case CustomerTypeBusiness:
		if entity.IsPrivate(r.CustomerNumber) {
			return false
		}
	}
	if f.Customer != "" && strings.TrimSpace(r.CustomerNumber) != f.Customer {
		return false
	}
	if f.ArticleID != "" && r.ArticleID != f.ArticleID {
		return false
	}
	return true
}

func matchOptional(v *string, want string) bool {
	if want == UnknownValue {
		return v == nil
	}
	return v != nil && *v == want
}

// Apply devuelve las filas que cumplen el filtro, en el mismo orden.
func (f Filter) Apply(rows []entity.SalesRow) []entity.SalesRow {
	out := make([]entity.SalesRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Describe texto legible de los criterios activos; "All Data" si no hay ninguno.
func (f Filter) Describe() string {
	var parts []string
	if !f.From.IsZero() || !f.To.IsZero() {
		parts = append(parts, fmt.Sprintf("Period: %s to %s", dateOr(f.From, "start"), dateOr(f.To, "end")))
	}
	if f.Country != "" {
		parts = append(parts, "Country: "+f.Country)
	}
	if f.Group != "" {
		parts = append(parts, "Customer Group: "+f.Group)
	}
	switch f.CustomerType {
	case CustomerTypePrivate:
		parts = append(parts, "Customer Type: Private")
	case CustomerTypeBusiness:
		parts = append(parts, "Customer Type: Business")
	}
	if f.Customer != "" {
		parts = append(parts, "Customer: "+f.Customer)
	}
	if f.ArticleID != "" {
		parts = append(parts, "Article: "+f.ArticleID)
	}
	if len(parts) == 0 {
		return "All Data"
	}
	return strings.Join(parts, ", ")
}

func dateOr(t time.Time, def string) string {
	if t.IsZero() {
		return def
	}
	return t.Format(entity.DateLayout)
}
