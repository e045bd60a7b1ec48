// internal/platform/ui/summary.go
package ui

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"ipsift/internal/core/domain"
)

// Presenter renderiza el resumen de la corrida en terminal.
type Presenter interface {
	Header(version string, feedName, resolverName string, workers int)
	Summary(report *domain.RunReport, buckets []BucketSummary, elapsed time.Duration)
}

// BucketSummary es una fila del resumen por país.
type BucketSummary struct {
	Country  domain.Country
	Accepted int
	Capacity int
}

// PTermPresenter implementa Presenter usando pterm.
type PTermPresenter struct{}

// NewPTermPresenter crea el presenter por defecto.
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Header imprime el encabezado de la corrida.
func (p *PTermPresenter) Header(version, feedName, resolverName string, workers int) {
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("ipsift - Endpoint Sifting Engine " + version)

	pterm.Println()
	pterm.Printf("  Feed: %s   Resolver: %s   Workers: %d\n",
		pterm.Cyan(feedName), pterm.Yellow(resolverName), workers)
	pterm.Println()
}

// Summary imprime la tabla por país y los contadores de la corrida.
func (p *PTermPresenter) Summary(report *domain.RunReport, buckets []BucketSummary, elapsed time.Duration) {
	pterm.DefaultSection.Println("Run Summary")

	rows := pterm.TableData{{"COUNTRY", "ACCEPTED", "QUOTA"}}
	for _, b := range buckets {
		rows = append(rows, []string{
			b.Country.Upper(),
			fmt.Sprintf("%d", b.Accepted),
			fmt.Sprintf("%d", b.Capacity),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.Println()
	pterm.Printf("  Collected: %d   Tested: %d   Accepted: %d   Elapsed: %s\n",
		report.Collected, report.Tested, report.TotalLines, elapsed.Round(time.Millisecond))

	switch report.Outcome {
	case domain.OutcomeNoCandidates:
		pterm.Warning.Println("no candidates found in feed")
	case domain.OutcomeNothingAccepted:
		pterm.Warning.Println("verification ran but nothing was accepted")
	case domain.OutcomeQuotasMet:
		pterm.Success.Println("all quotas met")
	case domain.OutcomePartial:
		pterm.Info.Println("candidates exhausted before all quotas filled")
	}
	pterm.Println()
}

// NoopPresenter descarta toda la salida (modo quiet).
type NoopPresenter struct{}

// NewNoopPresenter crea el presenter silencioso.
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Header(string, string, string, int) {}

func (n *NoopPresenter) Summary(*domain.RunReport, []BucketSummary, time.Duration) {}
