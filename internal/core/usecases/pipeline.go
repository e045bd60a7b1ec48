// internal/core/usecases/pipeline.go
package usecases

import (
	"context"
	"time"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// Pipeline coordina el flujo completo:
// feed -> collector -> verifier -> assembler -> reporte.
// Todo fallo interno se degrada a "este candidato se descarta/es inalcanzable";
// lo único fatal es no poder obtener el set de candidatos.
type Pipeline struct {
	feed      ports.Feed
	resolver  ports.CountryResolver
	prober    ports.Prober
	collector *Collector
	verifier  *Verifier
	assembler *Assembler
	quotas    *QuotaSelector
	logger    logx.Logger
}

// PipelineOptions configura el pipeline.
type PipelineOptions struct {
	Feed        ports.Feed
	Resolver    ports.CountryResolver
	Prober      ports.Prober
	Quotas      *QuotaSelector
	WorkerLimit int
	TagLines    bool
	Logger      logx.Logger
}

// NewPipeline crea una nueva instancia del pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	assembler := NewAssembler()
	if opts.TagLines {
		assembler = NewTaggedAssembler()
	}

	return &Pipeline{
		feed:      opts.Feed,
		resolver:  opts.Resolver,
		prober:    opts.Prober,
		collector: NewCollector(opts.Logger),
		verifier: NewVerifier(VerifierOptions{
			Quotas:      opts.Quotas,
			WorkerLimit: opts.WorkerLimit,
			Logger:      opts.Logger,
		}),
		assembler: assembler,
		quotas:    opts.Quotas,
		logger:    opts.Logger.With("component", "pipeline"),
	}
}

// Run ejecuta la corrida completa y retorna el reporte más las líneas
// ensambladas. Solo el fallo del feed retorna error (fatal).
func (p *Pipeline) Run(ctx context.Context) (*domain.RunReport, []string, error) {
	start := time.Now()

	rawText, err := p.feed.Fetch(ctx)
	if err != nil {
		// SourceUnavailable: sin candidatos no hay verificación posible
		return nil, nil, errors.Wrap(domain.ErrFeedUnavailable, err.Error())
	}

	candidates := p.collector.Collect(ctx, rawText, p.quotas.CountrySet(), p.resolver)

	buckets, tested := p.verifier.Verify(ctx, candidates, p.prober)

	allMet := p.quotas.AllQuotasMet(buckets)
	report := domain.NewRunReport(len(candidates), tested, buckets, allMet)
	report.Duration = time.Since(start)

	lines := p.assembler.Assemble(buckets, p.quotas.Countries())

	p.logger.Info("run completed",
		"outcome", report.Outcome,
		"collected", report.Collected,
		"tested", report.Tested,
		"accepted", report.TotalLines,
		"duration_ms", report.Duration.Milliseconds(),
	)

	return report, lines, nil
}
