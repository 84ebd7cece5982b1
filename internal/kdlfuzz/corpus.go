// Package kdlfuzz regenerates a small seed corpus of KDL documents for
// fuzz testing, the way the teacher's own (now-removed) fuzz package
// seeded its corpus from randomized fragments rather than checking in a
// large fixed fixture set.
package kdlfuzz

import (
	"fmt"
	"math/rand"
	"strings"

	"oss.terrastruct.com/xos"
	"oss.terrastruct.com/xrand"
)

// seedCountEnvVar overrides how many documents GenerateCorpus produces,
// read through an *xos.Env so tests can inject a value without touching
// the real process environment — the same indirection e2etests-cli uses
// *xos.Env for everywhere it would otherwise call os.Getenv directly.
const seedCountEnvVar = "KDL_FUZZ_SEED_COUNT"

const defaultSeedCount = 32

// GenerateCorpus returns n randomly generated, syntactically varied KDL
// documents, using env to resolve seedCountEnvVar when n <= 0.
func GenerateCorpus(env *xos.Env, rng *rand.Rand, n int) []string {
	if env == nil {
		env = xos.NewEnv(nil)
	}
	if n <= 0 {
		n = defaultSeedCount
		if v := env.Getenv(seedCountEnvVar); v != "" {
			if parsed, err := fmt.Sscanf(v, "%d", &n); err != nil || parsed != 1 {
				n = defaultSeedCount
			}
		}
	}

	docs := make([]string, n)
	for i := range docs {
		docs[i] = randomDocument(rng, 1+rng.Intn(4))
	}
	return docs
}

func randomDocument(rng *rand.Rand, depth int) string {
	var sb strings.Builder
	nodeCount := 1 + rng.Intn(3)
	for i := 0; i < nodeCount; i++ {
		sb.WriteString(randomNode(rng, depth))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func randomNode(rng *rand.Rand, depth int) string {
	var sb strings.Builder
	sb.WriteString(xrand.String(1+rng.Intn(8), []rune("abcdefghijklmnopqrstuvwxyz")))

	argCount := rng.Intn(4)
	for i := 0; i < argCount; i++ {
		sb.WriteByte(' ')
		sb.WriteString(randomValue(rng))
	}

	if depth > 0 && rng.Intn(3) == 0 {
		sb.WriteString(" {\n")
		sb.WriteString(randomDocument(rng, depth-1))
		sb.WriteString("}")
	}
	return sb.String()
}

func randomValue(rng *rand.Rand) string {
	switch rng.Intn(5) {
	case 0:
		return fmt.Sprintf("%d", rng.Intn(1_000_000)-500_000)
	case 1:
		return fmt.Sprintf("%g", rng.Float64()*1000)
	case 2:
		return `"` + xrand.String(rng.Intn(12), nil) + `"`
	case 3:
		return "#true"
	default:
		return "#null"
	}
}
