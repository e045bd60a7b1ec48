// internal/core/domain/country.go
package domain

// Country es un código de país en minúsculas (ISO 3166-1 alpha-2).
// El valor vacío significa "sin resolver".
type Country string

// CountryUnresolved es el resultado de un resolver que no pudo clasificar la línea.
const CountryUnresolved Country = ""

// Países reconocidos por defecto.
const (
	CountrySG Country = "sg"
	CountryHK Country = "hk"
	CountryJP Country = "jp"
	CountryTW Country = "tw"
	CountryKR Country = "kr"
	CountryUS Country = "us"
	CountryCN Country = "cn"
)

// DefaultPriority es el orden fijo de prioridad para el ensamblado final.
// Las líneas de un país anterior siempre preceden a las de uno posterior.
var DefaultPriority = []Country{CountrySG, CountryHK, CountryJP, CountryTW, CountryKR, CountryUS}

// PriorityWithCN es la variante que incluye China al final de la lista.
var PriorityWithCN = append(append([]Country{}, DefaultPriority...), CountryCN)

// IsValid verifica que el código tenga formato alpha-2 en minúsculas.
func (c Country) IsValid() bool {
	if len(c) != 2 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'a' || c[i] > 'z' {
			return false
		}
	}
	return true
}

// Upper retorna el código en mayúsculas (para el sufijo "#CC" del output etiquetado).
func (c Country) Upper() string {
	b := []byte(c)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

// CountrySet es el conjunto de países reconocidos en una ejecución.
type CountrySet map[Country]struct{}

// NewCountrySet construye un set a partir de una lista ordenada.
func NewCountrySet(countries ...Country) CountrySet {
	s := make(CountrySet, len(countries))
	for _, c := range countries {
		s[c] = struct{}{}
	}
	return s
}

// Contains indica si el país pertenece al conjunto reconocido.
func (s CountrySet) Contains(c Country) bool {
	_, ok := s[c]
	return ok
}

// QuotaTable mapea país -> máximo de líneas aceptadas.
type QuotaTable map[Country]int

// DefaultQuotas retorna la tabla de cupos por defecto.
func DefaultQuotas() QuotaTable {
	return QuotaTable{
		CountrySG: 50,
		CountryHK: 30,
		CountryJP: 20,
		CountryTW: 10,
		CountryKR: 10,
		CountryUS: 30,
	}
}

// CapacityFor retorna el cupo configurado para un país (0 si no figura).
func (q QuotaTable) CapacityFor(c Country) int {
	return q[c]
}
