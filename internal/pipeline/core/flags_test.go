package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFlagsRejectsExclusivePair(t *testing.T) {
	assert.False(t, ValidateFlags(GenNormals|GenSmoothNormals))
	assert.True(t, ValidateFlags(GenNormals))
	assert.True(t, ValidateFlags(GenSmoothNormals|Triangulate))
}

func TestFlagsAnyAndHas(t *testing.T) {
	f := GenNormals | Triangulate
	assert.True(t, f.Any(Triangulate))
	assert.False(t, f.Any(FlipUVs))
	assert.True(t, f.Has(GenNormals|Triangulate))
	assert.False(t, f.Has(GenNormals|FlipUVs))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", Flags(0).String())
	assert.Contains(t, (GenNormals | Triangulate).String(), "GenNormals")
	assert.Contains(t, (GenNormals | Triangulate).String(), "Triangulate")
}
