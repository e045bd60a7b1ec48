// internal/feed/http.go
package feed

import (
	"context"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/httpclient"
	"ipsift/internal/platform/logx"
)

// HTTPFeed obtiene el texto de candidatos con un GET simple, sin reintentos:
// si la fuente no responde, toda la corrida falla (no hay nada que verificar).
type HTTPFeed struct {
	url    string
	client *httpclient.Client
	logger logx.Logger
}

// NewHTTPFeed crea un feed HTTP sobre el cliente compartido.
func NewHTTPFeed(url string, client *httpclient.Client, logger logx.Logger) *HTTPFeed {
	if logger == nil {
		logger = logx.New()
	}
	return &HTTPFeed{
		url:    url,
		client: client,
		logger: logger.With("feed", "http"),
	}
}

// Name retorna el nombre de la fuente.
func (f *HTTPFeed) Name() string {
	return "http"
}

// Fetch descarga el texto crudo. Cualquier fallo es domain.ErrFeedUnavailable.
func (f *HTTPFeed) Fetch(ctx context.Context) (string, error) {
	body, err := f.client.Get(ctx, f.url)
	if err != nil {
		return "", errors.Wrapf(domain.ErrFeedUnavailable, "%s: %v", f.url, err)
	}
	if len(body) == 0 {
		return "", errors.Wrapf(domain.ErrEmptyFeed, "%s", f.url)
	}

	f.logger.Info("feed fetched", "url", f.url, "bytes", len(body))
	return string(body), nil
}
