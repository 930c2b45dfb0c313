package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	s := Parse(" Group_Cache=ON, auth_rate_limit=off,experimental, broken=maybe,,=on")

	assert.True(t, s.Enabled(GroupCache))
	assert.False(t, s.Enabled(AuthRateLimit))
	assert.True(t, s.Enabled("experimental"))
	assert.False(t, s.Enabled("broken"))
	assert.False(t, s.Enabled("missing"))

	assert.Equal(t, map[string]bool{
		"group_cache":     true,
		"auth_rate_limit": false,
		"experimental":    true,
		"broken":          false,
	}, s.Snapshot())
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.False(t, s.Enabled(GroupCache))
}
