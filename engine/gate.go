package engine

import "sync"

// Gate releases keys a fixed time after they were last pressed, for inputs
// such as terminals that report presses but not releases.  A key pressed
// again while held, as by autorepeat, is held longer instead of being
// pressed twice.
type Gate[K comparable] struct {
	mu      sync.Mutex
	length  float64
	release func(K)
	held    map[K]float64
}

func NewGate[K comparable](length float64, release func(K)) *Gate[K] {
	return &Gate[K]{length: length, release: release, held: map[K]float64{}}
}

// Press holds k from time now and reports whether it was newly pressed.
func (g *Gate[K]) Press(k K, now float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.held[k]
	g.held[k] = now + g.length
	return !held
}

// Advance releases every key whose time is up.
func (g *Gate[K]) Advance(now float64) {
	var due []K
	g.mu.Lock()
	for k, t := range g.held {
		if t <= now {
			due = append(due, k)
			delete(g.held, k)
		}
	}
	g.mu.Unlock()
	for _, k := range due {
		g.release(k)
	}
}

// Held returns the number of keys held.
func (g *Gate[K]) Held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.held)
}
