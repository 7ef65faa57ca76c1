package testutil

import (
	"math/rand/v2"
	"strings"

	"github.com/leengari/tabular/internal/domain/table"
)

// Generator produces n random values for one column.
type Generator func(r *rand.Rand, n int) any

// Token generates fixed-length alphabetic strings.
func Token(length int, upper bool) Generator {
	base := 'a'
	if upper {
		base = 'A'
	}
	return func(r *rand.Rand, n int) any {
		out := make([]string, n)
		var b strings.Builder
		for i := range out {
			b.Reset()
			for range length {
				b.WriteRune(base + rune(r.IntN(26)))
			}
			out[i] = b.String()
		}
		return out
	}
}

// UniformInt generates integers in [lo, hi].
func UniformInt(lo, hi int64) Generator {
	return func(r *rand.Rand, n int) any {
		out := make([]int64, n)
		for i := range out {
			out[i] = lo + r.Int64N(hi-lo+1)
		}
		return out
	}
}

// Normal generates normally distributed floats.
func Normal(mu, sigma float64) Generator {
	return func(r *rand.Rand, n int) any {
		out := make([]float64, n)
		for i := range out {
			out[i] = mu + sigma*r.NormFloat64()
		}
		return out
	}
}

// Choice picks uniformly among choices.
func Choice(choices ...string) Generator {
	return func(r *rand.Rand, n int) any {
		out := make([]string, n)
		for i := range out {
			out[i] = choices[r.IntN(len(choices))]
		}
		return out
	}
}

// Field names a generator.
type Field struct {
	Name string
	Gen  Generator
}

// RandomTable builds an n-row table with one column per field. The same
// seed always yields the same table.
func RandomTable(seed uint64, n int, fields ...Field) *table.Table {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	defs := make([]table.Def, len(fields))
	for i, f := range fields {
		defs[i] = table.Col(f.Name, f.Gen(r, n))
	}
	return table.MustNew(defs...)
}

// DemoTable is a random table with two text key columns and two small
// integer columns (10 and 20 distinct values) suited to grouping.
func DemoTable(seed uint64, n int) *table.Table {
	return RandomTable(seed, n,
		Field{"name0", Token(4, true)},
		Field{"name1", Token(6, true)},
		Field{"val0", UniformInt(0, 9)},
		Field{"val1", UniformInt(0, 19)},
		Field{"data", Normal(0, 1)},
	)
}
