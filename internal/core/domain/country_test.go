// internal/core/domain/country_test.go
package domain

import "testing"

func TestCountryIsValid(t *testing.T) {
	tests := []struct {
		name    string
		country Country
		want    bool
	}{
		{"lowercase alpha-2", CountrySG, true},
		{"another lowercase", Country("de"), true},
		{"empty means unresolved", CountryUnresolved, false},
		{"uppercase rejected", Country("SG"), false},
		{"mixed case rejected", Country("Sg"), false},
		{"too long", Country("sgp"), false},
		{"too short", Country("s"), false},
		{"digits rejected", Country("s1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.country.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.country, got, tt.want)
			}
		})
	}
}

func TestCountryUpper(t *testing.T) {
	if got := CountryHK.Upper(); got != "HK" {
		t.Errorf("Upper() = %q, want HK", got)
	}
	if got := CountryUnresolved.Upper(); got != "" {
		t.Errorf("Upper() on unresolved = %q, want empty", got)
	}
}

func TestDefaultPriorityOrder(t *testing.T) {
	want := []Country{CountrySG, CountryHK, CountryJP, CountryTW, CountryKR, CountryUS}

	if len(DefaultPriority) != len(want) {
		t.Fatalf("DefaultPriority has %d entries, want %d", len(DefaultPriority), len(want))
	}
	for i, c := range want {
		if DefaultPriority[i] != c {
			t.Errorf("DefaultPriority[%d] = %q, want %q", i, DefaultPriority[i], c)
		}
	}
}

func TestPriorityWithCNAppendsChinaLast(t *testing.T) {
	if len(PriorityWithCN) != len(DefaultPriority)+1 {
		t.Fatalf("PriorityWithCN has %d entries, want %d", len(PriorityWithCN), len(DefaultPriority)+1)
	}
	if PriorityWithCN[len(PriorityWithCN)-1] != CountryCN {
		t.Errorf("last entry = %q, want cn", PriorityWithCN[len(PriorityWithCN)-1])
	}
	// la variante no debe mutar la lista base
	if DefaultPriority[len(DefaultPriority)-1] != CountryUS {
		t.Errorf("DefaultPriority was mutated, last = %q", DefaultPriority[len(DefaultPriority)-1])
	}
}

func TestCountrySetContains(t *testing.T) {
	set := NewCountrySet(CountrySG, CountryHK)

	if !set.Contains(CountrySG) {
		t.Error("set should contain sg")
	}
	if set.Contains(CountryJP) {
		t.Error("set should not contain jp")
	}
	if set.Contains(CountryUnresolved) {
		t.Error("set should not contain the unresolved value")
	}
}

func TestQuotaTableCapacityFor(t *testing.T) {
	quotas := DefaultQuotas()

	if got := quotas.CapacityFor(CountrySG); got != 50 {
		t.Errorf("CapacityFor(sg) = %d, want 50", got)
	}
	if got := quotas.CapacityFor(CountryCN); got != 0 {
		t.Errorf("CapacityFor(cn) = %d, want 0 for missing entry", got)
	}
}
