// internal/feed/file.go
package feed

import (
	"context"
	"os"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// FileFeed lee el texto de candidatos desde un archivo local.
// Útil para re-correr el pipeline sobre dumps ya descargados.
type FileFeed struct {
	path   string
	logger logx.Logger
}

// NewFileFeed crea un feed de archivo.
func NewFileFeed(path string, logger logx.Logger) *FileFeed {
	if logger == nil {
		logger = logx.New()
	}
	return &FileFeed{
		path:   path,
		logger: logger.With("feed", "file"),
	}
}

// Name retorna el nombre de la fuente.
func (f *FileFeed) Name() string {
	return "file"
}

// Fetch lee el archivo completo. Cualquier fallo es domain.ErrFeedUnavailable.
func (f *FileFeed) Fetch(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", errors.Wrapf(domain.ErrFeedUnavailable, "%s: %v", f.path, err)
	}
	if len(data) == 0 {
		return "", errors.Wrapf(domain.ErrEmptyFeed, "%s", f.path)
	}

	f.logger.Info("feed read", "path", f.path, "bytes", len(data))
	return string(data), nil
}
