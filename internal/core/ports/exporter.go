// internal/core/ports/exporter.go
package ports

import "ipsift/internal/core/domain"

// Exporter es el port para escribir el resultado ensamblado.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "flat", "json")
	Name() string

	// Export escribe las líneas aceptadas y/o el reporte de la corrida.
	// La política ante cero líneas aceptadas es de cada exporter: la lista
	// plana no escribe nada, el reporte se escribe igual.
	Export(report *domain.RunReport, lines []string) error
}
