package userform

import (
	"math/rand"

	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/profile"
)

// placeholderAgeBound is the exclusive upper bound of the generated age.
const placeholderAgeBound = 10

// AgeSource produces the placeholder age. *rand.Rand satisfies it.
type AgeSource interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// DefaultAgeSource draws from the process-wide math/rand source.
func DefaultAgeSource() AgeSource {
	return globalRand{}
}

// MapRecord turns a remote record into initial form values. The record has no
// country or age: country takes the city as a placeholder and age is a fresh
// integer in [0, 10), which is below the enforced minimum on purpose.
// Password is left unset.
func MapRecord(rec profile.Record, ages AgeSource) map[string]form.Value {
	if ages == nil {
		ages = DefaultAgeSource()
	}
	return map[string]form.Value{
		FieldFullName: rec.Name,
		FieldAge:      ages.Intn(placeholderAgeBound),
		FieldEmail:    rec.Email,
		FieldCountry:  rec.Address.City,
	}
}
