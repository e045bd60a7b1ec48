// internal/core/usecases/assembler_test.go
package usecases

import (
	"reflect"
	"testing"

	"ipsift/internal/core/domain"
)

func assemblyFixture() map[domain.Country]*domain.Bucket {
	// los buckets guardan en orden de finalización, deliberadamente desordenado
	sg := domain.NewBucket(domain.CountrySG, 5)
	sg.Accept(7, "sg-line-7")
	sg.Accept(2, "sg-line-2")
	sg.Accept(4, "sg-line-4")

	hk := domain.NewBucket(domain.CountryHK, 5)
	hk.Accept(9, "hk-line-9")
	hk.Accept(1, "hk-line-1")

	jp := domain.NewBucket(domain.CountryJP, 5)

	return map[domain.Country]*domain.Bucket{
		domain.CountrySG: sg,
		domain.CountryHK: hk,
		domain.CountryJP: jp,
	}
}

var assemblyPriority = []domain.Country{domain.CountrySG, domain.CountryHK, domain.CountryJP}

func TestAssembleSortsWithinCountryAndConcatenatesByPriority(t *testing.T) {
	lines := NewAssembler().Assemble(assemblyFixture(), assemblyPriority)

	want := []string{"sg-line-2", "sg-line-4", "sg-line-7", "hk-line-1", "hk-line-9"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Assemble() = %v, want %v", lines, want)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	buckets := assemblyFixture()
	a := NewAssembler()

	first := a.Assemble(buckets, assemblyPriority)
	second := a.Assemble(buckets, assemblyPriority)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated assembly differs: %v vs %v", first, second)
	}
}

func TestAssembleDoesNotMutateBuckets(t *testing.T) {
	buckets := assemblyFixture()
	NewAssembler().Assemble(buckets, assemblyPriority)

	// el orden de llegada dentro del bucket debe quedar intacto
	sg := buckets[domain.CountrySG].Accepted
	if sg[0].Index != 7 || sg[1].Index != 2 || sg[2].Index != 4 {
		t.Errorf("bucket mutated by assembly: %+v", sg)
	}
}

func TestAssembleTaggedVariant(t *testing.T) {
	lines := NewTaggedAssembler().Assemble(assemblyFixture(), assemblyPriority)

	if lines[0] != "sg-line-2 #SG" {
		t.Errorf("first tagged line = %q", lines[0])
	}
	if lines[3] != "hk-line-1 #HK" {
		t.Errorf("fourth tagged line = %q", lines[3])
	}
}

func TestAssembleSkipsCountriesMissingFromBuckets(t *testing.T) {
	buckets := assemblyFixture()
	priority := []domain.Country{domain.CountryUS, domain.CountrySG}

	lines := NewAssembler().Assemble(buckets, priority)
	want := []string{"sg-line-2", "sg-line-4", "sg-line-7"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Assemble() = %v, want %v", lines, want)
	}
}

func TestAssembleAllEmpty(t *testing.T) {
	buckets := map[domain.Country]*domain.Bucket{
		domain.CountrySG: domain.NewBucket(domain.CountrySG, 3),
	}

	lines := NewAssembler().Assemble(buckets, []domain.Country{domain.CountrySG})
	if len(lines) != 0 {
		t.Errorf("empty buckets produced %v", lines)
	}
}
