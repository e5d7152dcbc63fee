package salesfile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/salesfile"
)

func customerGrid(header []string, rows ...[]string) *salesfile.Grid {
	raw := [][]string{{"Kundlista"}, {"Utskriven 2025-02-01"}, {}, {}, {}}
	raw = append(raw, header)
	raw = append(raw, rows...)
	return salesfile.NewGrid(raw)
}

var fullHeader = []string{"Kundnummer", "Namn", "Adress", "Postnummer", "Postort", "Land", "Kundgrupp", "Telefon"}

func TestCustomerParser_MapeoYDeduplicacion(t *testing.T) {
	g := customerGrid(fullHeader,
		[]string{"00123", "Acme AB", "Gatan 1", "11122", "Stockholm", "SE", "Retail", "08-123"},
		[]string{"", "Sin número"},
		[]string{"9001", "Privatperson"},
		[]string{" 00123 ", "Acme AB v2", "Gatan 2", "11133", "Solna", "SE", "Wholesale"},
	)

	list, err := salesfile.NewCustomerParser(-1).Parse(g, "Kundlista.xlsx")
	require.NoError(t, err)
	require.Len(t, list, 2)

	acme := list[0]
	assert.Equal(t, "00123", acme.CustomerNumber, "los ceros a la izquierda se conservan")
	assert.Equal(t, "Acme AB v2", acme.Name, "gana la última aparición")
	assert.Equal(t, "Solna", acme.City)
	assert.Equal(t, "11133", acme.ZipCode)
	assert.Equal(t, "Wholesale", acme.CustomerGroup)

	assert.Equal(t, "9001", list[1].CustomerNumber)
	assert.Empty(t, list[1].Country)
}

func TestCustomerParser_ColumnasParciales(t *testing.T) {
	g := customerGrid([]string{"Land", "Kundnummer"}, []string{"NO", "77"})

	list, err := salesfile.NewCustomerParser(-1).Parse(g, "Kundlista.xlsx")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "77", list[0].CustomerNumber)
	assert.Equal(t, "NO", list[0].Country)
	assert.Empty(t, list[0].Name)
}

func TestCustomerParser_SinColumnaClave(t *testing.T) {
	g := customerGrid([]string{"Namn", "Land"}, []string{"Acme", "SE"})

	_, err := salesfile.NewCustomerParser(-1).Parse(g, "Kundlista.xlsx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedCustomerFile))
}

func TestCustomerParser_SinFilaDeCabecera(t *testing.T) {
	g := salesfile.NewGrid([][]string{{"Kundlista"}})

	_, err := salesfile.NewCustomerParser(-1).Parse(g, "Kundlista.xlsx")
	var malformed *domain.MalformedCustomerFileError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "Kundlista.xlsx", malformed.File)
}
