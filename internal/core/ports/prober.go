// internal/core/ports/prober.go
package ports

import "context"

// Prober es el port para la verificación de alcanzabilidad.
// El engine lo trata como una única operación bloqueante atómica con
// presupuesto de timeout interno; los detalles (ICMP, TCP, carrera entre
// sub-checks) quedan detrás de esta interfaz.
type Prober interface {
	// Name retorna el nombre del prober (ej: "icmp+tcp")
	Name() string

	// Probe retorna el veredicto para una dirección. Un error es distinto de
	// un veredicto negativo: el engine lo cuenta y lo trata como inalcanzable,
	// nunca aborta la corrida.
	Probe(ctx context.Context, address string) (bool, error)
}
