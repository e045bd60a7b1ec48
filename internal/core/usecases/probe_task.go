// internal/core/usecases/probe_task.go
package usecases

import (
	"context"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
)

// probeOutcome es el estado de una tarea de verificación.
// Transiciones: pending -> reachable|unreachable (probe completado) o
// pending -> canceled (cupos llenos antes de correr). Nunca transiciona dos veces.
type probeOutcome int

const (
	outcomePending probeOutcome = iota
	outcomeReachable
	outcomeUnreachable
	outcomeCanceled
)

// ProbeTask adapta un par (candidato, prober) a workerpool.Task.
// El worker que la ejecuta es el único que escribe outcome; la goroutine
// coordinadora lo lee recién al consumir el resultado del pool.
type ProbeTask struct {
	candidate domain.Candidate
	prober    ports.Prober

	outcome probeOutcome
	err     error
}

// NewProbeTask crea una nueva ProbeTask.
func NewProbeTask(candidate domain.Candidate, prober ports.Prober) *ProbeTask {
	return &ProbeTask{
		candidate: candidate,
		prober:    prober,
		outcome:   outcomePending,
	}
}

// Execute corre el probe y fija el veredicto.
func (t *ProbeTask) Execute(ctx context.Context) error {
	reachable, err := t.prober.Probe(ctx, t.candidate.Address)
	if err != nil {
		// ProbeFailure se degrada a inalcanzable; se cuenta, nunca aborta.
		t.outcome = outcomeUnreachable
		t.err = err
		return err
	}
	if reachable {
		t.outcome = outcomeReachable
	} else {
		t.outcome = outcomeUnreachable
	}
	return nil
}

// Cancel marca la tarea como abandonada. Una tarea cancelada no puede
// aceptarse en ningún bucket aunque su probe hubiera resuelto true.
func (t *ProbeTask) Cancel() {
	if t.outcome == outcomePending {
		t.outcome = outcomeCanceled
	}
}

// Name retorna el nombre de la tarea (la dirección probada).
func (t *ProbeTask) Name() string {
	return t.candidate.Address
}

// Candidate retorna el candidato asociado.
func (t *ProbeTask) Candidate() domain.Candidate {
	return t.candidate
}

// Reachable indica si el veredicto fue alcanzable.
func (t *ProbeTask) Reachable() bool {
	return t.outcome == outcomeReachable
}
