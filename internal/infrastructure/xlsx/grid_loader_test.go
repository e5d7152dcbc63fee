package xlsx_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xlsx"
)

// buildWorkbook arma un libro en memoria con una hoja y las filas dadas (celda A1 en adelante).
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return buf.Bytes()
}

func TestGridLoader_LeePrimeraHoja(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Kundnr.", "Kundnamn"},
		{"00107", nil},
		{nil, 9005, "Silent Socks", 3, nil, nil, 15.5, nil, 120},
	})

	g, err := xlsx.NewGridLoader().Load(bytes.NewReader(data), "test.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 9, g.Width())
	assert.Equal(t, "Kundnr.", g.Cell(0, 0).String())
	assert.Equal(t, "00107", g.Cell(1, 0).String(), "el texto con ceros a la izquierda no se convierte")
	assert.True(t, g.Cell(1, 1).IsEmpty())
	assert.Equal(t, "9005", g.Cell(2, 1).String())
	assert.Equal(t, "15.5", g.Cell(2, 6).String())
	assert.True(t, g.Cell(2, 0).IsEmpty())
}

func TestGridLoader_ContenedorInvalido(t *testing.T) {
	_, err := xlsx.NewGridLoader().LoadBytes([]byte("esto no es un zip"), "roto.xlsx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnreadableFile))

	var unreadable *domain.UnreadableFileError
	require.ErrorAs(t, err, &unreadable)
	assert.Equal(t, "roto.xlsx", unreadable.File)
}
