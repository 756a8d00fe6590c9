package codegen

import (
	"math/rand/v2"
	"time"

	"github.com/stroy1click/confirmation-service/internal/domain"
)

// Generator produces confirmation code values together with their expiration
// horizon.
type Generator interface {
	Generate() (code int, expiresAt time.Time)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// Generate draws uniformly from [domain.CodeMin, domain.CodeMax]. The global
// rand/v2 source is seeded by the runtime from the OS, so values are not
// predictable across requests. Expiration is fixed at domain.CodeTTL from now.
func (g *RandomGenerator) Generate() (int, time.Time) {
	code := domain.CodeMin + rand.IntN(domain.CodeMax-domain.CodeMin+1)

	return code, time.Now().Add(domain.CodeTTL)
}
