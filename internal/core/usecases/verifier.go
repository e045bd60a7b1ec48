// internal/core/usecases/verifier.go
package usecases

import (
	"context"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/workerpool"
)

// DefaultWorkerLimit es el tope de probes concurrentes por defecto.
const DefaultWorkerLimit = 8

// Verifier despacha un probe por candidato sobre un pool acotado, consume
// veredictos en orden de finalización y corta temprano cuando todos los
// cupos se llenan. La separación central del diseño: aceptar en orden de
// finalización, emitir en orden original (eso lo restaura el Assembler).
type Verifier struct {
	quotas      *QuotaSelector
	workerLimit int
	logger      logx.Logger
}

// VerifierOptions configura el verifier.
type VerifierOptions struct {
	Quotas      *QuotaSelector
	WorkerLimit int
	Logger      logx.Logger
}

// NewVerifier crea una nueva instancia del verifier.
func NewVerifier(opts VerifierOptions) *Verifier {
	if opts.WorkerLimit <= 0 {
		opts.WorkerLimit = DefaultWorkerLimit
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Verifier{
		quotas:      opts.Quotas,
		workerLimit: opts.WorkerLimit,
		logger:      opts.Logger.With("component", "verifier"),
	}
}

// Verify prueba los candidatos y retorna los buckets congelados más el total
// de veredictos consumidos. Los buckets los muta únicamente esta goroutine;
// los workers no comparten estado mutable entre sí.
func (v *Verifier) Verify(ctx context.Context, candidates []domain.Candidate, prober ports.Prober) (map[domain.Country]*domain.Bucket, int) {
	buckets := v.quotas.NewBuckets()

	if len(candidates) == 0 {
		return buckets, 0
	}

	pool := workerpool.New(workerpool.Config{
		Workers: v.workerLimit,
		Logger:  v.logger,
	})
	// in-flight terminan en silencio y sus veredictos tardíos se descartan
	defer pool.Stop()

	tasks := make([]workerpool.Task, len(candidates))
	for i, cand := range candidates {
		tasks[i] = NewProbeTask(cand, prober)
	}
	pool.Run(tasks)

	v.logger.Info("verification started",
		"candidates", len(candidates),
		"workers", v.workerLimit,
		"probe", prober.Name(),
	)

	tested := 0
	for range tasks {
		var res workerpool.Result
		select {
		case res = <-pool.Results():
		case <-ctx.Done():
			v.logger.Warn("verification canceled by caller", "tested", tested)
			return buckets, tested
		}

		tested++
		task := res.Task.(*ProbeTask)
		cand := task.Candidate()

		if res.Error != nil {
			// error de red != veredicto negativo: se cuenta y se sigue
			v.logger.Debug("probe failed",
				"address", cand.Address,
				"error", res.Error.Error(),
			)
			continue
		}

		if !task.Reachable() {
			continue
		}

		bucket := buckets[cand.Country]
		if !v.quotas.HasRoom(bucket) {
			continue
		}
		bucket.Accept(cand.Index, cand.RawLine)

		v.logger.Debug("candidate accepted",
			"country", cand.Country,
			"address", cand.Address,
			"bucket_size", bucket.Size(),
		)

		if v.quotas.AllQuotasMet(buckets) {
			v.logger.Info("all quotas met, canceling outstanding probes",
				"tested", tested,
				"total", len(candidates),
			)
			return buckets, tested
		}
	}

	v.logger.Info("verification exhausted candidates", "tested", tested)
	return buckets, tested
}
