package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurorafx/sceneimport/internal/testutil"
)

func TestBuilderDefaultsToCanonicalRegistry(t *testing.T) {
	d := NewBuilder().Build()

	assert.True(t, d.IsDefaultIOHandler())
	assert.True(t, d.ValidateFlags(0))
}

func TestBuilderAppliesPropertyDefaults(t *testing.T) {
	d := NewBuilder().
		WithPropertyDefaults(func(d *Dispatcher) {
			d.SetPropertyFloat("crease-angle", 0.5)
		}).
		Build()

	assert.Equal(t, 0.5, d.GetPropertyFloat("crease-angle", -1))
}

func TestBuilderInstallsCustomIO(t *testing.T) {
	h := testutil.NewFakeIO().WithTextFile("a.obj", "x")
	d := NewBuilder().WithIO(h).Build()

	assert.False(t, d.IsDefaultIOHandler())
	assert.True(t, d.GetIOHandler().Exists("a.obj"))
}
