// internal/core/usecases/quota.go
package usecases

import (
	"ipsift/internal/core/domain"
)

// QuotaSelector es configuración pura: país -> máximo de líneas aceptadas.
// Maneja la condición de corte del engine y la capacidad de cada bucket.
type QuotaSelector struct {
	countries []domain.Country
	quotas    domain.QuotaTable
}

// NewQuotaSelector crea un selector sobre los países reconocidos dados.
// Un país sin entrada en la tabla queda con cupo 0 (bucket siempre lleno).
func NewQuotaSelector(countries []domain.Country, quotas domain.QuotaTable) *QuotaSelector {
	return &QuotaSelector{
		countries: countries,
		quotas:    quotas,
	}
}

// Countries retorna el orden de prioridad reconocido.
func (q *QuotaSelector) Countries() []domain.Country {
	return q.countries
}

// CountrySet retorna el conjunto reconocido para la recolección.
func (q *QuotaSelector) CountrySet() domain.CountrySet {
	return domain.NewCountrySet(q.countries...)
}

// CapacityFor retorna el cupo de un país.
func (q *QuotaSelector) CapacityFor(c domain.Country) int {
	return q.quotas.CapacityFor(c)
}

// NewBuckets crea un bucket vacío por cada país reconocido,
// incluso para países sin candidatos.
func (q *QuotaSelector) NewBuckets() map[domain.Country]*domain.Bucket {
	buckets := make(map[domain.Country]*domain.Bucket, len(q.countries))
	for _, c := range q.countries {
		buckets[c] = domain.NewBucket(c, q.quotas.CapacityFor(c))
	}
	return buckets
}

// HasRoom indica si el bucket puede aceptar otra línea.
func (q *QuotaSelector) HasRoom(b *domain.Bucket) bool {
	return b != nil && !b.Full()
}

// AllQuotasMet es true si y solo si cada país reconocido llenó su cupo.
func (q *QuotaSelector) AllQuotasMet(buckets map[domain.Country]*domain.Bucket) bool {
	for _, c := range q.countries {
		b, ok := buckets[c]
		if !ok || b.Size() != b.Capacity {
			return false
		}
	}
	return true
}
