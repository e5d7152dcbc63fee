package salesfile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FileKind tipo de archivo de importación según su nombre.
type FileKind string

const (
	KindSales     FileKind = "sales"
	KindCustomers FileKind = "customers"
)

// customerFileToken aparece en los nombres de los registros de clientes ("Kundlista 2025.xlsx").
const customerFileToken = "kundlista"

// DetectKind clasifica el archivo por nombre. Normaliza a NFC antes de plegar mayúsculas:
// los nombres subidos desde macOS llegan en NFD ("Försäljningsstatistik").
// Todo lo que no es un registro de clientes se trata como estadística de ventas.
func DetectKind(filename string) FileKind {
	// cases.Caser tiene estado: uno por llamada.
	name := cases.Fold().String(norm.NFC.String(filename))
	if strings.Contains(name, customerFileToken) {
		return KindCustomers
	}
	return KindSales
}
