package entity

// Customer representa un cliente del registro maestro (archivo "Kundlista").
// CustomerNumber es la clave natural: texto opaco, puede tener ceros a la izquierda.
// Los demás campos son opcionales; cadena vacía se persiste como NULL.
type Customer struct {
	CustomerNumber string
	Name           string
	Address        string
	ZipCode        string
	City           string
	Country        string
	CustomerGroup  string
}

// IsPrivate indica si el cliente es un particular: su número empieza por "90".
func IsPrivate(customerNumber string) bool {
	return len(customerNumber) >= 2 && customerNumber[:2] == "90"
}
