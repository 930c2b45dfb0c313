// Package featureflags parses the FEATURE_FLAGS setting.
package featureflags

import "strings"

// Known flags.
const (
	// GroupCache serves GET /groups from Redis when a client is configured.
	GroupCache = "group_cache"
	// AuthRateLimit throttles /register and /login per client IP.
	AuthRateLimit = "auth_rate_limit"
)

// Set holds flags from a comma-separated list such as
// "group_cache=on,auth_rate_limit=off". A bare name means on.
type Set struct {
	flags map[string]bool
}

// Parse builds a Set from raw. Unknown values count as off.
func Parse(raw string) *Set {
	out := make(map[string]bool)
	for _, pair := range strings.Split(raw, ",") {
		name, value, hasValue := strings.Cut(pair, "=")
		name = normalize(name)
		if name == "" {
			continue
		}
		if !hasValue {
			out[name] = true
			continue
		}
		switch normalize(value) {
		case "on", "true", "1", "yes":
			out[name] = true
		default:
			out[name] = false
		}
	}
	return &Set{flags: out}
}

// Enabled reports whether name is switched on. A nil Set has every flag off.
func (s *Set) Enabled(name string) bool {
	if s == nil {
		return false
	}
	return s.flags[normalize(name)]
}

// Snapshot returns a copy of the parsed flags.
func (s *Set) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
