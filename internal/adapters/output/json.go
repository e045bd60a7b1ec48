// internal/adapters/output/json.go
package output

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// JSONReporter escribe el reporte de la corrida (salida observacional,
// separada del formato plano en disco).
type JSONReporter struct {
	dir    string
	logger logx.Logger
}

// NewJSONReporter crea el reporter JSON.
func NewJSONReporter(dir string, logger logx.Logger) *JSONReporter {
	if logger == nil {
		logger = logx.New()
	}
	return &JSONReporter{
		dir:    dir,
		logger: logger.With("exporter", "json"),
	}
}

// Name retorna el nombre del exporter.
func (r *JSONReporter) Name() string {
	return "json"
}

// Export escribe el reporte con nombre timestampeado. El reporte se escribe
// incluso sin líneas aceptadas: "nada aceptado" es un estado reportable.
func (r *JSONReporter) Export(report *domain.RunReport, _ []string) error {
	if report == nil {
		return errors.Wrap(domain.ErrExportFailed, "nil report")
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Wrap(domain.ErrInvalidOutputPath, err.Error())
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(r.dir, "ipsift_report_"+timestamp+".json")

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(domain.ErrExportFailed, err.Error())
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(domain.ErrExportFailed, err.Error())
	}

	r.logger.Info("run report written", "path", path, "outcome", report.Outcome)
	return nil
}
