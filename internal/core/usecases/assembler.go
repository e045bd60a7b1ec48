// internal/core/usecases/assembler.go
package usecases

import (
	"fmt"
	"sort"

	"ipsift/internal/core/domain"
)

// Assembler convierte los buckets congelados en la secuencia final de líneas:
// dentro de cada país ordena por índice original ascendente, y concatena los
// países en el orden fijo de prioridad. El resultado es reproducible dado un
// contenido de buckets fijo, independiente del orden de finalización de los
// probes.
type Assembler struct {
	// tagLines agrega el sufijo " #CC" a cada línea emitida
	tagLines bool
}

// NewAssembler crea un assembler que emite las líneas verbatim.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// NewTaggedAssembler crea la variante que sufija cada línea con su país.
func NewTaggedAssembler() *Assembler {
	return &Assembler{tagLines: true}
}

// Assemble produce la secuencia ordenada de líneas de salida.
// Correrlo dos veces sobre los mismos buckets produce secuencias idénticas.
func (a *Assembler) Assemble(buckets map[domain.Country]*domain.Bucket, priority []domain.Country) []string {
	lines := make([]string, 0, a.totalAccepted(buckets))

	for _, country := range priority {
		bucket, ok := buckets[country]
		if !ok || bucket.Size() == 0 {
			continue
		}

		accepted := append([]domain.AcceptedLine{}, bucket.Accepted...)
		sort.Slice(accepted, func(i, j int) bool {
			return accepted[i].Index < accepted[j].Index
		})

		for _, line := range accepted {
			if a.tagLines {
				lines = append(lines, fmt.Sprintf("%s #%s", line.RawLine, country.Upper()))
			} else {
				lines = append(lines, line.RawLine)
			}
		}
	}

	return lines
}

func (a *Assembler) totalAccepted(buckets map[domain.Country]*domain.Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Size()
	}
	return total
}
