// internal/core/domain/candidate.go
package domain

// Candidate es una línea de input que sobrevivió a la recolección:
// tiene dirección IPv4 válida, país reconocido y no está duplicada.
type Candidate struct {
	// Index es la posición cero-based de la línea en el input original.
	// Define el orden intra-país del output. Inmutable tras la recolección.
	Index int

	// RawLine es el contenido original de la línea (se emite verbatim si se acepta).
	RawLine string

	// Address es la dirección IPv4 extraída (cada octeto en [0,255]).
	Address string

	// Country es el código asignado por el CountryResolver.
	Country Country
}

// AcceptedLine es una línea aceptada dentro de un bucket: par (índice, línea).
type AcceptedLine struct {
	Index   int
	RawLine string
}

// Bucket acumula las líneas aceptadas de un país, con capacidad fija.
// Durante la verificación solo la goroutine coordinadora lo muta;
// queda congelado cuando la verificación retorna.
type Bucket struct {
	Country  Country
	Capacity int
	Accepted []AcceptedLine
}

// NewBucket crea un bucket vacío con la capacidad del cupo.
func NewBucket(country Country, capacity int) *Bucket {
	if capacity < 0 {
		capacity = 0
	}
	return &Bucket{
		Country:  country,
		Capacity: capacity,
		Accepted: make([]AcceptedLine, 0, capacity),
	}
}

// Size retorna cuántas líneas lleva aceptadas.
func (b *Bucket) Size() int {
	return len(b.Accepted)
}

// Full indica si el bucket alcanzó su capacidad.
func (b *Bucket) Full() bool {
	return len(b.Accepted) >= b.Capacity
}

// Accept agrega una línea si queda espacio. Retorna false si el bucket está lleno.
func (b *Bucket) Accept(index int, rawLine string) bool {
	if b.Full() {
		return false
	}
	b.Accepted = append(b.Accepted, AcceptedLine{Index: index, RawLine: rawLine})
	return true
}
