package salesfile

// Layout mapeo de columnas del archivo de estadística de ventas. Es un contrato externo
// con el sistema de origen: un cambio de formato se introduce como una versión nueva,
// nunca editando una existente.
type Layout struct {
	Version        string
	CustomerNumber int // número de cliente o vacío
	ArticleCode    int // código de artículo, marcador de cabecera, marcador de total o vacío
	ArticleName    int
	Quantity       int // Antal
	TBAmount       int // TB i kr
	SalesAmount    int // Försäljning totalt exkl moms
}

// LayoutV1 formato observado en los archivos "Försäljningsstatistik".
var LayoutV1 = Layout{
	Version:        "v1",
	CustomerNumber: 0,
	ArticleCode:    1,
	ArticleName:    2,
	Quantity:       3,
	TBAmount:       6,
	SalesAmount:    8,
}

// minWidth columnas necesarias para extraer una línea de artículo.
func (l Layout) minWidth() int {
	return l.Quantity + 1
}

// Markers literales que delimitan la estructura del archivo de ventas.
type Markers struct {
	CustomerHeader string // columna 0 de la fila de cabecera, coincidencia exacta
	ArticleHeader  string // columna 1 de cabeceras repetidas, sin distinguir mayúsculas
	TotalRow       string // contenido en columna 1 de filas de totales
	ArticleName    string // prefijo comercial a partir del cual se conserva el nombre
}

// DefaultMarkers marcadores del sistema de origen (sueco).
var DefaultMarkers = Markers{
	CustomerHeader: "Kundnr.",
	ArticleHeader:  "Artikelnr.",
	TotalRow:       "totalt",
	ArticleName:    "Silent Socks",
}
