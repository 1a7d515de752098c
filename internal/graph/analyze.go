package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LayoutSummary describes where a headless layout run settled
type LayoutSummary struct {
	Ticks         int     `json:"ticks"`
	KineticEnergy float64 `json:"kinetic_energy"`
	Min           r3.Vec  `json:"min"`
	Max           r3.Vec  `json:"max"`
	MeanEdgeLen   float64 `json:"mean_edge_length"`
}

// AnalysisReport is the full analysis result
type AnalysisReport struct {
	Selection Selection       `json:"selection"`
	Topology  *TopologyReport `json:"topology"`
	Layout    *LayoutSummary  `json:"layout,omitempty"`
}

// AnalyzerConfig holds analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
	Ticks        int // headless layout ticks; 0 skips the layout summary
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 10,
		TopN:         50,
		Ticks:        0,
	}
}

// Analyze reports on the scene's active graph, optionally after running the
// layout for config.Ticks frames.
func Analyze(s *Scene, config *AnalyzerConfig) *AnalysisReport {
	report := &AnalysisReport{
		Selection: s.Selection(),
		Topology:  ComputeTopology(s.Active(), config.HubThreshold, config.TopN),
	}
	if config.Ticks > 0 {
		for i := 0; i < config.Ticks; i++ {
			s.Tick(1)
		}
		report.Layout = SummarizeLayout(s.Active())
		report.Layout.Ticks = config.Ticks
	}
	return report
}

// SummarizeLayout measures the bounding extent, energy and mean edge length of g
func SummarizeLayout(g *Graph) *LayoutSummary {
	sum := &LayoutSummary{KineticEnergy: KineticEnergy(g)}
	if len(g.Nodes) == 0 {
		return sum
	}
	sum.Min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	sum.Max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, n := range g.Nodes {
		sum.Min = r3.Vec{X: math.Min(sum.Min.X, n.Pos.X), Y: math.Min(sum.Min.Y, n.Pos.Y), Z: math.Min(sum.Min.Z, n.Pos.Z)}
		sum.Max = r3.Vec{X: math.Max(sum.Max.X, n.Pos.X), Y: math.Max(sum.Max.Y, n.Pos.Y), Z: math.Max(sum.Max.Z, n.Pos.Z)}
	}
	if len(g.Edges) > 0 {
		var total float64
		for _, e := range g.Edges {
			total += r3.Norm(r3.Sub(g.Nodes[e.Target].Pos, g.Nodes[e.Source].Pos))
		}
		sum.MeanEdgeLen = total / float64(len(g.Edges))
	}
	return sum
}
