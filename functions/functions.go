// Package functions is a catalog of function pairs (f, f') whose basins are
// worth drawing. Every entry keeps f' the true derivative of f.
package functions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Robaina/BasinOfAttraction/cplx"
	"github.com/Robaina/BasinOfAttraction/newton"
)

type Pair struct {
	Name string
	F    newton.Func
	DF   newton.Func
}

// pow multiplies z by itself n times.
func pow(z complex128, n int) complex128 {
	p := complex(1, 0)
	for range n {
		p = cplx.Mul(p, z)
	}
	return p
}

// UnityRoots returns z^n - 1 and its derivative n·z^(n-1).
func UnityRoots(n int) Pair {
	nc := complex(float64(n), 0)
	return Pair{
		Name: fmt.Sprintf("z%d", n),
		F:    func(z complex128) complex128 { return cplx.Sub(pow(z, n), 1) },
		DF:   func(z complex128) complex128 { return cplx.Mul(nc, pow(z, n-1)) },
	}
}

var (
	Sin = Pair{Name: "sin", F: cplx.Sin, DF: cplx.Cos}

	// Tan uses tan' = 1/cos².
	Tan = Pair{
		Name: "tan",
		F:    cplx.Tan,
		DF: func(z complex128) complex128 {
			c := cplx.Cos(z)
			return cplx.Div(1, cplx.Mul(c, c))
		},
	}
)

var catalog = map[string]Pair{}

func register(p Pair) { catalog[p.Name] = p }

func init() {
	for _, n := range []int{3, 5, 6, 7} {
		register(UnityRoots(n))
	}
	register(Sin)
	register(Tan)
}

var ErrUnknownFunction = errors.New("unknown function")

func Lookup(name string) (Pair, error) {
	p, ok := catalog[name]
	if !ok {
		return Pair{}, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return p, nil
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
