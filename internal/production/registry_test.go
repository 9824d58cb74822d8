package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_KnownBuiltins(t *testing.T) {
	r := NewRegistry()
	ids := r.List()
	assert.ElementsMatch(t, []string{"basic", "demand-constrained"}, ids)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("does-not-exist")
	require.Error(t, err)
}

func TestRegistry_RegisterDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	err := r.Register("basic", BasicBuilder{})
	require.Error(t, err)
}

func TestRegistry_DeriveID(t *testing.T) {
	assert.Equal(t, "demand-constrained", DeriveID("DemandConstrainedBuilder"))
	assert.Equal(t, "basic", DeriveID("BasicBuilder"))
}

func TestRegistry_DiscoverSkipsCollisions(t *testing.T) {
	r := NewRegistry()
	skipped := r.Discover(map[string]Builder{
		"BasicBuilder":   BasicBuilder{},
		"PremiumBuilder": BasicBuilder{},
	})
	assert.Contains(t, skipped, "basic")

	_, err := r.Get("premium")
	require.NoError(t, err)
}
