// internal/core/usecases/quota_test.go
package usecases

import (
	"testing"

	"ipsift/internal/core/domain"
)

func TestQuotaSelectorNewBuckets(t *testing.T) {
	q := NewQuotaSelector(
		[]domain.Country{domain.CountrySG, domain.CountryHK},
		domain.QuotaTable{domain.CountrySG: 2, domain.CountryHK: 1},
	)

	buckets := q.NewBuckets()
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[domain.CountrySG].Capacity != 2 {
		t.Errorf("sg capacity = %d, want 2", buckets[domain.CountrySG].Capacity)
	}
	if buckets[domain.CountryHK].Capacity != 1 {
		t.Errorf("hk capacity = %d, want 1", buckets[domain.CountryHK].Capacity)
	}
}

func TestQuotaSelectorBucketForMissingCountryHasZeroCapacity(t *testing.T) {
	q := NewQuotaSelector([]domain.Country{domain.CountryTW}, domain.QuotaTable{})

	buckets := q.NewBuckets()
	if !buckets[domain.CountryTW].Full() {
		t.Error("country without a quota entry should get an always-full bucket")
	}
}

func TestAllQuotasMet(t *testing.T) {
	q := NewQuotaSelector(
		[]domain.Country{domain.CountrySG, domain.CountryHK},
		domain.QuotaTable{domain.CountrySG: 1, domain.CountryHK: 1},
	)
	buckets := q.NewBuckets()

	if q.AllQuotasMet(buckets) {
		t.Error("empty buckets should not report all met")
	}

	buckets[domain.CountrySG].Accept(0, "a")
	if q.AllQuotasMet(buckets) {
		t.Error("one unfilled bucket should block all-met")
	}

	buckets[domain.CountryHK].Accept(1, "b")
	if !q.AllQuotasMet(buckets) {
		t.Error("every bucket at capacity should report all met")
	}
}

func TestAllQuotasMetWithZeroCapacity(t *testing.T) {
	// un cupo 0 cuenta como lleno desde el arranque
	q := NewQuotaSelector(
		[]domain.Country{domain.CountrySG, domain.CountryHK},
		domain.QuotaTable{domain.CountrySG: 1, domain.CountryHK: 0},
	)
	buckets := q.NewBuckets()

	buckets[domain.CountrySG].Accept(0, "a")
	if !q.AllQuotasMet(buckets) {
		t.Error("zero-capacity bucket should count as met")
	}
}

func TestHasRoom(t *testing.T) {
	q := NewQuotaSelector([]domain.Country{domain.CountrySG}, domain.QuotaTable{domain.CountrySG: 1})

	b := domain.NewBucket(domain.CountrySG, 1)
	if !q.HasRoom(b) {
		t.Error("empty bucket should have room")
	}
	b.Accept(0, "x")
	if q.HasRoom(b) {
		t.Error("full bucket should not have room")
	}
	if q.HasRoom(nil) {
		t.Error("nil bucket should not have room")
	}
}

func TestCountrySetMatchesPriority(t *testing.T) {
	q := NewQuotaSelector(domain.DefaultPriority, domain.DefaultQuotas())

	set := q.CountrySet()
	for _, c := range domain.DefaultPriority {
		if !set.Contains(c) {
			t.Errorf("set missing %q", c)
		}
	}
	if set.Contains(domain.CountryCN) {
		t.Error("cn should not be recognized by default")
	}
}
