// internal/adapters/output/flat.go
package output

import (
	"os"
	"path/filepath"
	"strings"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// FlatWriter escribe la lista plana: una línea original por candidato
// aceptado, agrupadas por país en orden de prioridad. Con cero líneas no
// intenta ninguna escritura.
type FlatWriter struct {
	dir      string
	filename string
	logger   logx.Logger
}

// NewFlatWriter crea el writer del archivo plano.
func NewFlatWriter(dir, filename string, logger logx.Logger) *FlatWriter {
	if logger == nil {
		logger = logx.New()
	}
	return &FlatWriter{
		dir:      dir,
		filename: filename,
		logger:   logger.With("exporter", "flat"),
	}
}

// Name retorna el nombre del exporter.
func (w *FlatWriter) Name() string {
	return "flat"
}

// Export escribe las líneas ensambladas, newline-delimited, UTF-8.
func (w *FlatWriter) Export(_ *domain.RunReport, lines []string) error {
	if len(lines) == 0 {
		w.logger.Info("nothing accepted, skipping flat output")
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.Wrap(domain.ErrInvalidOutputPath, err.Error())
	}

	path := filepath.Join(w.dir, w.filename)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(domain.ErrExportFailed, err.Error())
	}

	w.logger.Info("flat output written", "path", path, "lines", len(lines))
	return nil
}
