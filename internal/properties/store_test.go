package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	s := New()
	s.SetInteger("max-bones", 60)
	assert.Equal(t, 60, s.GetInteger("max-bones", -1))
	assert.Equal(t, -1, s.GetInteger("missing", -1))

	s.SetFloat("epsilon", 1e-5)
	assert.InDelta(t, 1e-5, s.GetFloat("epsilon", 0), 1e-12)

	s.SetString("format-hint", "obj")
	assert.Equal(t, "obj", s.GetString("format-hint", ""))
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	s.SetInteger("k", 1)

	clone := s.Clone()
	clone.SetInteger("k", 2)

	assert.Equal(t, 1, s.GetInteger("k", 0))
	assert.Equal(t, 2, clone.GetInteger("k", 0))
}
