package backtrack

// DefaultMaxDepth is the default nesting limit for recursive matches.
const DefaultMaxDepth = 200

// DefaultMaxCaptures is the default maximum number of explicit captures.
const DefaultMaxCaptures = 32

// depthGuard counts the recursion budget left in one match attempt.
type depthGuard struct {
	limit     int
	remaining int
}

func newDepthGuard(limit int) depthGuard {
	return depthGuard{limit: limit, remaining: limit}
}

func (g *depthGuard) reset() {
	g.remaining = g.limit
}

// enter takes one unit of budget; false means the limit is exhausted.
func (g *depthGuard) enter() bool {
	if g.remaining == 0 {
		return false
	}
	g.remaining--
	return true
}

func (g *depthGuard) leave() {
	g.remaining++
}

// used returns the current nesting depth.
func (g *depthGuard) used() int {
	return g.limit - g.remaining
}
