// Package xlsx carga libros .xlsx como cuadrículas sin tipos usando excelize.
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/salesfile"
)

// GridLoader lee la primera hoja de un libro y la devuelve como salesfile.Grid.
type GridLoader struct{}

// NewGridLoader construye el cargador.
func NewGridLoader() *GridLoader { return &GridLoader{} }

// Load lee el libro completo en memoria (excelize lo requiere) y devuelve la primera
// hoja con valores crudos de celda, sin formato numérico ni inferencia de cabeceras.
// Cualquier fallo de lectura del contenedor se reporta como UnreadableFileError.
func (l *GridLoader) Load(r io.Reader, filename string) (*salesfile.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.UnreadableFileError{File: filename, Err: fmt.Errorf("leer bytes: %w", err)}
	}
	return l.LoadBytes(data, filename)
}

// LoadBytes igual que Load partiendo de los bytes del archivo.
func (l *GridLoader) LoadBytes(data []byte, filename string) (*salesfile.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.UnreadableFileError{File: filename, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.UnreadableFileError{File: filename, Err: errors.New("el libro no tiene hojas")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domain.UnreadableFileError{File: filename, Err: fmt.Errorf("hoja %s: %w", sheets[0], err)}
	}
	return salesfile.NewGrid(rows), nil
}
