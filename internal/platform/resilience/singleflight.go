package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight collapses concurrent calls that share a key into one.
type SingleFlight struct {
	group singleflight.Group
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result was handed to more than one caller.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (value any, err error, shared bool) {
	return g.group.Do(key, fn)
}

// Forget drops an in-flight key so the next call runs fn again.
func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
