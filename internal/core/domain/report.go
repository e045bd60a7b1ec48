// internal/core/domain/report.go
package domain

import "time"

// Outcome clasifica el estado terminal de una ejecución.
// "sin candidatos" y "nada aceptado" son estados distintos y reportables,
// nunca se funden en un único caso de "sin output".
type Outcome string

const (
	// OutcomeNoCandidates: la recolección no produjo candidatos; no hubo verificación.
	OutcomeNoCandidates Outcome = "no_candidates"

	// OutcomeNothingAccepted: la verificación corrió pero ningún probe pasó.
	OutcomeNothingAccepted Outcome = "nothing_accepted"

	// OutcomeQuotasMet: todos los cupos se llenaron (posible cancelación temprana).
	OutcomeQuotasMet Outcome = "quotas_met"

	// OutcomePartial: los candidatos se agotaron antes de llenar todos los cupos.
	// No es un error: el output es lo acumulado.
	OutcomePartial Outcome = "partial"
)

// RunReport resume una invocación del pipeline. Son salidas observacionales,
// no forman parte del formato en disco.
type RunReport struct {
	Outcome    Outcome          `json:"outcome"`
	Collected  int              `json:"collected"`
	Tested     int              `json:"tested"`
	Accepted   map[Country]int  `json:"accepted"`
	TotalLines int              `json:"total_accepted"`
	Duration   time.Duration    `json:"duration_ns"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewRunReport arma el reporte a partir de los buckets congelados.
func NewRunReport(collected, tested int, buckets map[Country]*Bucket, allMet bool) *RunReport {
	r := &RunReport{
		Collected: collected,
		Tested:    tested,
		Accepted:  make(map[Country]int, len(buckets)),
		Timestamp: time.Now().UTC(),
	}
	for country, b := range buckets {
		r.Accepted[country] = b.Size()
		r.TotalLines += b.Size()
	}

	switch {
	case collected == 0:
		r.Outcome = OutcomeNoCandidates
	case r.TotalLines == 0:
		r.Outcome = OutcomeNothingAccepted
	case allMet:
		r.Outcome = OutcomeQuotasMet
	default:
		r.Outcome = OutcomePartial
	}
	return r
}
