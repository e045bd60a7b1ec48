// internal/resolvers/rangedb/rangedb.go
package rangedb

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/iputil"
	"ipsift/internal/platform/logx"
)

// ipRange es una fila (start, end, country) con las IPs como uint32.
type ipRange struct {
	start   uint32
	end     uint32
	country domain.Country
}

// Resolver clasifica direcciones contra una tabla de rangos tipo DB-IP
// country-lite (CSV start_ip,end_ip,country). Las filas IPv6 se saltan.
// La tabla se ordena al cargar y cada lookup es una búsqueda binaria.
type Resolver struct {
	ranges []ipRange
	logger logx.Logger
}

// New carga la tabla de rangos desde un archivo CSV.
func New(csvPath string, logger logx.Logger) (*Resolver, error) {
	if logger == nil {
		logger = logx.New()
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open range database %s", csvPath)
	}
	defer f.Close()

	r := &Resolver{logger: logger.With("resolver", "rangedb")}
	if err := r.load(f); err != nil {
		return nil, err
	}

	r.logger.Info("range database loaded", "path", csvPath, "ranges", len(r.ranges))
	return r, nil
}

// NewFromReader carga la tabla desde un reader (para tests).
func NewFromReader(reader io.Reader, logger logx.Logger) (*Resolver, error) {
	if logger == nil {
		logger = logx.New()
	}
	r := &Resolver{logger: logger.With("resolver", "rangedb")}
	if err := r.load(reader); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) load(reader io.Reader) error {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to parse range database row")
		}
		if len(row) < 3 {
			skipped++
			continue
		}

		startIP := strings.Trim(strings.TrimSpace(row[0]), `"`)
		endIP := strings.Trim(strings.TrimSpace(row[1]), `"`)
		country := domain.Country(strings.ToLower(strings.TrimSpace(row[2])))

		start, okStart := iputil.ToUint32(startIP)
		end, okEnd := iputil.ToUint32(endIP)
		if !okStart || !okEnd {
			// filas IPv6 u otras malformadas
			skipped++
			continue
		}

		r.ranges = append(r.ranges, ipRange{start: start, end: end, country: country})
	}

	sort.Slice(r.ranges, func(i, j int) bool {
		return r.ranges[i].start < r.ranges[j].start
	})

	if skipped > 0 {
		r.logger.Debug("skipped non-ipv4 rows", "count", skipped)
	}
	if len(r.ranges) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "range database contains no ipv4 rows")
	}
	return nil
}

// Name retorna el nombre de la estrategia.
func (r *Resolver) Name() string {
	return "rangedb"
}

// Resolve busca el rango que contiene la dirección. La línea completa no se
// usa en esta estrategia.
func (r *Resolver) Resolve(_ context.Context, _, address string) (domain.Country, error) {
	n, ok := iputil.ToUint32(address)
	if !ok {
		return domain.CountryUnresolved, nil
	}

	// primer rango con start > n; el candidato es el anterior
	idx := sort.Search(len(r.ranges), func(i int) bool {
		return r.ranges[i].start > n
	})
	if idx == 0 {
		return domain.CountryUnresolved, nil
	}

	rng := r.ranges[idx-1]
	if n >= rng.start && n <= rng.end {
		return rng.country, nil
	}
	return domain.CountryUnresolved, nil
}

// Close no tiene recursos que liberar: la tabla vive en memoria.
func (r *Resolver) Close() error {
	return nil
}

// Len retorna la cantidad de rangos cargados.
func (r *Resolver) Len() int {
	return len(r.ranges)
}
