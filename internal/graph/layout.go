package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LayoutConfig holds the force integrator parameters
type LayoutConfig struct {
	Repulsion   float64 `toml:"repulsion"`
	Attraction  float64 `toml:"attraction"`
	Damping     float64 `toml:"damping"`
	MaxVelocity float64 `toml:"max_velocity"`
	// Epsilon floors pair distances so coincident nodes do not blow up
	Epsilon float64 `toml:"epsilon"`
	// MaxPairChecks caps repulsion pairs per tick; 0 means no cap.
	// Pairs past the cap are skipped in ascending index order, not sampled.
	MaxPairChecks int    `toml:"max_pair_checks"`
	Bounds        Bounds `toml:"bounds"`
}

// DefaultLayoutConfig returns production defaults
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Repulsion:     100,
		Attraction:    0.01,
		Damping:       0.92,
		MaxVelocity:   2,
		Epsilon:       0.1,
		MaxPairChecks: 50_000,
		Bounds:        DefaultBounds,
	}
}

// Simulator advances node positions and velocities once per frame.
// It is the only writer of node state; callers must not tick concurrently.
type Simulator struct {
	cfg    LayoutConfig
	paused bool
}

// NewSimulator creates a running simulator. A non-positive epsilon is
// replaced by the default floor.
func NewSimulator(cfg LayoutConfig) *Simulator {
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultLayoutConfig().Epsilon
	}
	return &Simulator{cfg: cfg}
}

// Config returns the simulator parameters
func (s *Simulator) Config() LayoutConfig { return s.cfg }

// Pause freezes positions until Resume
func (s *Simulator) Pause() { s.paused = true }

// Resume restarts the integration
func (s *Simulator) Resume() { s.paused = false }

// Paused reports whether the simulation is frozen
func (s *Simulator) Paused() bool { return s.paused }

// Advance runs one tick over g: repulsion, attraction, damping and
// integration, then containment. dt is measured in frames (1 = one frame).
// While paused every velocity is zeroed and positions are left untouched.
func (s *Simulator) Advance(g *Graph, dt float64) {
	if s.paused {
		for _, n := range g.Nodes {
			n.Vel = r3.Vec{}
		}
		return
	}

	s.repel(g, dt)
	s.attract(g, dt)

	for _, n := range g.Nodes {
		v := r3.Scale(s.cfg.Damping, n.Vel)
		v.X = clamp(v.X, -s.cfg.MaxVelocity, s.cfg.MaxVelocity)
		v.Y = clamp(v.Y, -s.cfg.MaxVelocity, s.cfg.MaxVelocity)
		v.Z = clamp(v.Z, -s.cfg.MaxVelocity, s.cfg.MaxVelocity)
		n.Vel = v
		n.Pos = s.cfg.Bounds.Clamp(r3.Add(n.Pos, r3.Scale(dt, v)))
	}
}

// repel applies inverse-square repulsion to every unordered pair (i < j),
// pushing i away from j and j away from i by the same amount.
func (s *Simulator) repel(g *Graph, dt float64) {
	checks := 0
	nodes := g.Nodes
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if s.cfg.MaxPairChecks > 0 && checks >= s.cfg.MaxPairChecks {
				return
			}
			checks++

			a, b := nodes[i], nodes[j]
			d := r3.Sub(a.Pos, b.Pos)
			dist := s.distance(d)
			force := s.cfg.Repulsion / (dist * dist)
			push := r3.Scale(force*dt/dist, d)
			a.Vel = r3.Add(a.Vel, push)
			b.Vel = r3.Sub(b.Vel, push)
		}
	}
}

// attract pulls the endpoints of every edge toward each other with a force
// proportional to their distance and the edge strength.
func (s *Simulator) attract(g *Graph, dt float64) {
	for _, e := range g.Edges {
		src, dst := g.Nodes[e.Source], g.Nodes[e.Target]
		d := r3.Sub(dst.Pos, src.Pos)
		dist := s.distance(d)
		force := s.cfg.Attraction * dist * e.Strength
		pull := r3.Scale(force*dt/dist, d)
		src.Vel = r3.Add(src.Vel, pull)
		dst.Vel = r3.Sub(dst.Vel, pull)
	}
}

func (s *Simulator) distance(d r3.Vec) float64 {
	return math.Max(r3.Norm(d), s.cfg.Epsilon)
}

// KineticEnergy is ½·Σ|v|² over all nodes, used to judge convergence
func KineticEnergy(g *Graph) float64 {
	var e float64
	for _, n := range g.Nodes {
		e += r3.Norm2(n.Vel)
	}
	return e / 2
}
