// internal/resolvers/geodb/geodb.go
package geodb

import (
	"context"
	"net"
	"strings"

	"github.com/oschwald/maxminddb-golang"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// record es la proyección mínima del registro country de la base.
type record struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Resolver clasifica direcciones contra una base binaria local en formato
// MaxMind. El handle se construye y se posee explícitamente: se abre una vez,
// se inyecta, y Close lo libera; nada de estado global ambiente.
type Resolver struct {
	reader *maxminddb.Reader
	logger logx.Logger
}

// New abre la base de datos geo local.
func New(dbPath string, logger logx.Logger) (*Resolver, error) {
	if logger == nil {
		logger = logx.New()
	}

	reader, err := maxminddb.Open(dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open geo database %s", dbPath)
	}

	logger.Info("geo database opened", "path", dbPath, "build_epoch", reader.Metadata.BuildEpoch)

	return &Resolver{
		reader: reader,
		logger: logger.With("resolver", "geodb"),
	}, nil
}

// Name retorna el nombre de la estrategia.
func (r *Resolver) Name() string {
	return "geodb"
}

// Resolve busca la dirección en la base. La línea completa no se usa.
func (r *Resolver) Resolve(_ context.Context, _, address string) (domain.Country, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return domain.CountryUnresolved, nil
	}

	var rec record
	if err := r.reader.Lookup(ip, &rec); err != nil {
		return domain.CountryUnresolved, errors.Wrap(err, "geo lookup failed")
	}
	if rec.Country.ISOCode == "" {
		return domain.CountryUnresolved, nil
	}

	return domain.Country(strings.ToLower(rec.Country.ISOCode)), nil
}

// Close libera el handle de la base.
func (r *Resolver) Close() error {
	return r.reader.Close()
}
