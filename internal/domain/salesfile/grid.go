package salesfile

import "strings"

// Cell valor de una celda. El valor cero es la celda vacía; nunca se usa un
// texto centinela para representar "sin valor".
type Cell struct {
	text string
	set  bool
}

// Empty celda vacía.
var Empty Cell

// Text construye una celda con contenido. Texto vacío produce Empty.
func Text(s string) Cell {
	if s == "" {
		return Empty
	}
	return Cell{text: s, set: true}
}

// IsEmpty true si la celda no tiene valor o solo contiene espacios.
func (c Cell) IsEmpty() bool {
	return !c.set || strings.TrimSpace(c.text) == ""
}

// String texto recortado; "" para celdas vacías.
func (c Cell) String() string {
	if !c.set {
		return ""
	}
	return strings.TrimSpace(c.text)
}

// Raw texto sin recortar y si la celda tenía valor.
func (c Cell) Raw() (string, bool) {
	return c.text, c.set
}

// Row fila de la cuadrícula. Acceder fuera de rango devuelve Empty.
type Row []Cell

// Cell devuelve la celda i o Empty.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty
	}
	return r[i]
}

// Grid cuadrícula rectangular filas × columnas, sin inferencia de cabeceras.
type Grid struct {
	rows  []Row
	width int
}

// NewGrid construye una cuadrícula rellenando cada fila hasta la más ancha.
func NewGrid(raw [][]string) *Grid {
	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}
	rows := make([]Row, len(raw))
	for i, r := range raw {
		row := make(Row, width)
		for j, v := range r {
			row[j] = Text(v)
		}
		rows[i] = row
	}
	return &Grid{rows: rows, width: width}
}

// Len número de filas.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// Width número de columnas.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

// Row devuelve la fila i (nil fuera de rango).
func (g *Grid) Row(i int) Row {
	if g == nil || i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// Cell devuelve la celda (row, col) o Empty.
func (g *Grid) Cell(row, col int) Cell {
	return g.Row(row).Cell(col)
}
