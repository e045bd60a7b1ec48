// internal/core/ports/feed.go
package ports

import "context"

// Feed es el port para obtener el texto crudo de candidatos.
// Un fallo aquí es fatal para toda la corrida: sin candidatos no hay
// verificación posible (domain.ErrFeedUnavailable).
type Feed interface {
	// Name retorna el nombre de la fuente (ej: "http", "file")
	Name() string

	// Fetch retorna el texto UTF-8 delimitado por newlines.
	Fetch(ctx context.Context) (string, error)
}
