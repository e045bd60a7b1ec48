// internal/resolvers/remote/remote.go
package remote

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/httpclient"
	"ipsift/internal/platform/logx"
)

// defaultBatchLimit es el máximo de direcciones por llamada que acepta el
// endpoint de batch (límite documentado de ip-api.com/batch).
const defaultBatchLimit = 100

// batchEntry es un elemento del request: solo pedimos el campo countryCode.
type batchEntry struct {
	Query  string `json:"query"`
	Fields string `json:"fields"`
}

// batchResult es un elemento de la respuesta del endpoint.
type batchResult struct {
	Query       string `json:"query"`
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
}

// Resolver clasifica direcciones con un lookup remoto por lotes.
// Las llamadas van rate-limited a través del httpclient compartido.
type Resolver struct {
	client     *httpclient.Client
	batchURL   string
	batchLimit int
	timeout    time.Duration
	logger     logx.Logger
}

// Options configura el resolver remoto.
type Options struct {
	Client     *httpclient.Client
	BatchURL   string
	BatchLimit int
	Timeout    time.Duration
	Logger     logx.Logger
}

// New crea un resolver remoto.
func New(opts Options) *Resolver {
	if opts.BatchLimit <= 0 || opts.BatchLimit > defaultBatchLimit {
		opts.BatchLimit = defaultBatchLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Resolver{
		client:     opts.Client,
		batchURL:   opts.BatchURL,
		batchLimit: opts.BatchLimit,
		timeout:    opts.Timeout,
		logger:     opts.Logger.With("resolver", "remote"),
	}
}

// Name retorna el nombre de la estrategia.
func (r *Resolver) Name() string {
	return "remote"
}

// Resolve clasifica una única dirección delegando en el batch.
func (r *Resolver) Resolve(ctx context.Context, _, address string) (domain.Country, error) {
	result, err := r.ResolveBatch(ctx, []string{address})
	if err != nil {
		return domain.CountryUnresolved, err
	}
	return result[address], nil
}

// ResolveBatch clasifica hasta BatchLimit direcciones por llamada.
// Direcciones sin clasificación quedan fuera del mapa retornado.
func (r *Resolver) ResolveBatch(ctx context.Context, addresses []string) (map[string]domain.Country, error) {
	out := make(map[string]domain.Country, len(addresses))

	for start := 0; start < len(addresses); start += r.batchLimit {
		end := start + r.batchLimit
		if end > len(addresses) {
			end = len(addresses)
		}
		if err := r.resolveChunk(ctx, addresses[start:end], out); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r *Resolver) resolveChunk(ctx context.Context, addresses []string, out map[string]domain.Country) error {
	entries := make([]batchEntry, len(addresses))
	for i, addr := range addresses {
		entries[i] = batchEntry{Query: addr, Fields: "query,status,countryCode"}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to encode batch request")
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := r.client.Post(reqCtx, r.batchURL, "application/json", payload)
	if err != nil {
		return errors.Wrap(err, "batch lookup failed")
	}

	var results []batchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return errors.Wrap(errors.ErrInvalidResponse, err.Error())
	}

	for _, res := range results {
		if res.Status != "success" || res.CountryCode == "" {
			continue
		}
		out[res.Query] = domain.Country(strings.ToLower(res.CountryCode))
	}

	r.logger.Debug("batch resolved", "requested", len(addresses), "classified", len(results))
	return nil
}

// BatchLimit retorna el máximo de direcciones por llamada.
func (r *Resolver) BatchLimit() int {
	return r.batchLimit
}

// Close no tiene recursos propios; el httpclient es compartido.
func (r *Resolver) Close() error {
	return nil
}
