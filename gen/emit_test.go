package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lens-go/opticgen/scan"
)

func TestCanonicalizeSortsByByteOrder(t *testing.T) {
	names := scan.NewNameSet()
	for _, n := range []string{"width", "Height", "alpha", "Zeta", "_internal"} {
		names.Insert(n)
	}

	// ASCII byte order: uppercase < underscore < lowercase
	assert.Equal(t, []string{"Height", "Zeta", "_internal", "alpha", "width"}, Canonicalize(names))
}

func TestCanonicalizeFiltersReservedNames(t *testing.T) {
	names := scan.NewNameSet()
	names.Insert("Some")
	names.Insert("None")
	names.Insert("Ok")
	names.Insert("Err")
	names.Insert("width")
	for i := 0; i <= 16; i++ {
		names.Insert(fmt.Sprintf("_%d", i))
	}

	assert.Equal(t, []string{"width"}, Canonicalize(names))
}

func TestReservedCoversTuplePositionsZeroThroughSixteen(t *testing.T) {
	for i := 0; i <= 16; i++ {
		assert.True(t, Reserved(fmt.Sprintf("_%d", i)))
	}
	assert.False(t, Reserved("_17"))
	assert.False(t, Reserved("Okay"))
}

func TestRenderEmptySequence(t *testing.T) {
	out := Render("optics", nil)
	assert.Equal(t, "// Code generated by opticgen. DO NOT EDIT.\n\npackage optics\n", out)
}

func TestRenderBlockShape(t *testing.T) {
	out := Render("optics", []string{"x", "y"})

	want := `// Code generated by opticgen. DO NOT EDIT.

package optics

//nolint:revive,stylecheck
type x[Optics any] struct{ Optics Optics }

//nolint:revive,stylecheck
type y[Optics any] struct{ Optics Optics }
`
	assert.Equal(t, want, out)
}

func TestRenderIsDeterministic(t *testing.T) {
	names := []string{"Circle", "height", "width"}
	first := Render("optics", names)
	second := Render("optics", names)

	require.Equal(t, first, second)
}

func TestRenderOrderIndependentOfInsertion(t *testing.T) {
	forward := scan.NewNameSet()
	backward := scan.NewNameSet()
	words := []string{"alpha", "beta", "gamma"}
	for i := range words {
		forward.Insert(words[i])
		backward.Insert(words[len(words)-1-i])
	}

	assert.Equal(t, Render("optics", Canonicalize(forward)), Render("optics", Canonicalize(backward)))
}
