package entity

// Setting par clave/valor (ej. API key de un proveedor de IA). Último en escribir gana.
type Setting struct {
	Key   string
	Value string
}
