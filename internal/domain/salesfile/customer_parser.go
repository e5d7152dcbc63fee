package salesfile

import (
	"fmt"
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// DefaultCustomerHeaderRow fila (base 0) de cabeceras en el archivo "Kundlista".
const DefaultCustomerHeaderRow = 5

// Etiquetas reconocidas en la cabecera del registro de clientes.
const (
	LabelCustomerNumber = "Kundnummer"
	LabelName           = "Namn"
	LabelAddress        = "Adress"
	LabelZipCode        = "Postnummer"
	LabelCity           = "Postort"
	LabelCountry        = "Land"
	LabelCustomerGroup  = "Kundgrupp"
)

var customerFields = map[string]func(c *entity.Customer, v string){
	LabelCustomerNumber: func(c *entity.Customer, v string) { c.CustomerNumber = v },
	LabelName:           func(c *entity.Customer, v string) { c.Name = v },
	LabelAddress:        func(c *entity.Customer, v string) { c.Address = v },
	LabelZipCode:        func(c *entity.Customer, v string) { c.ZipCode = v },
	LabelCity:           func(c *entity.Customer, v string) { c.City = v },
	LabelCountry:        func(c *entity.Customer, v string) { c.Country = v },
	LabelCustomerGroup:  func(c *entity.Customer, v string) { c.CustomerGroup = v },
}

// CustomerParser parser de cabecera fija para el registro de clientes.
type CustomerParser struct {
	headerRow int
}

// NewCustomerParser construye el parser; headerRow < 0 usa DefaultCustomerHeaderRow.
func NewCustomerParser(headerRow int) *CustomerParser {
	if headerRow < 0 {
		headerRow = DefaultCustomerHeaderRow
	}
	return &CustomerParser{headerRow: headerRow}
}

// Parse mapea columnas por etiqueta exacta, ignora las desconocidas, descarta filas sin
// número de cliente y deduplica por número (gana la última aparición).
// Devuelve MalformedCustomerFileError si falta la cabecera o la columna Kundnummer.
func (p *CustomerParser) Parse(g *Grid, filename string) ([]*entity.Customer, error) {
	if g.Len() <= p.headerRow {
		return nil, &domain.MalformedCustomerFileError{
			File:   filename,
			Reason: fmt.Sprintf("sin fila de cabecera en la posición %d", p.headerRow+1),
		}
	}

	setters := make(map[int]func(*entity.Customer, string))
	keyCol := -1
	for col, cell := range g.Row(p.headerRow) {
		label := cell.String()
		if set, ok := customerFields[label]; ok {
			setters[col] = set
			if label == LabelCustomerNumber {
				keyCol = col
			}
		}
	}
	if keyCol < 0 {
		return nil, &domain.MalformedCustomerFileError{
			File:   filename,
			Reason: "falta la columna " + LabelCustomerNumber,
		}
	}

	byKey := make(map[string]*entity.Customer)
	var order []string
	for i := p.headerRow + 1; i < g.Len(); i++ {
		row := g.Row(i)
		key := row.Cell(keyCol).String()
		if key == "" {
			continue
		}
		c := &entity.Customer{}
		for col, set := range setters {
			set(c, strings.TrimSpace(row.Cell(col).String()))
		}
		c.CustomerNumber = key
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = c
	}

	out := make([]*entity.Customer, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out, nil
}
