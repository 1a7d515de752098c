package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/ui"
)

var (
	analyzeJSON         bool
	analyzeTopN         int
	analyzeHubThreshold int
	analyzeTicks        int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the similarity graph: size, orphans, hubs, clusters, layout extent",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		scene, err := loadScene(d, cfg.Graph.Seed)
		if err != nil {
			return err
		}
		if sel := selectionFromFlags(); !sel.IsEmpty() {
			scene.SetSelection(sel)
		}

		config := &graph.AnalyzerConfig{
			HubThreshold: analyzeHubThreshold,
			TopN:         analyzeTopN,
			Ticks:        analyzeTicks,
		}
		report := graph.Analyze(scene, config)

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printHumanReadable(report, len(scene.Full().Nodes))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 10, "Number of top items to show per section")
	analyzeCmd.Flags().IntVar(&analyzeHubThreshold, "hub-threshold", 10, "Minimum degree to consider an episode a hub")
	analyzeCmd.Flags().IntVar(&analyzeTicks, "ticks", 0, "Run the layout this many frames and summarize where it settles")
	addSelectionFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func printHumanReadable(report *graph.AnalysisReport, fullNodes int) {
	t := report.Topology

	fmt.Println()
	ui.Header(os.Stdout, "  TOPOLOGY")
	fmt.Println("  ────────────────────────────────────────")
	if !report.Selection.IsEmpty() {
		fmt.Printf("  Selection: %s\n", describeSelection(report.Selection))
		fmt.Printf("  Visible: %s of %s episodes\n", humanize.Comma(int64(t.TotalNodes)), humanize.Comma(int64(fullNodes)))
	}
	fmt.Printf("  Nodes: %s  Edges: %s  Clusters: %d  Largest: %d\n",
		humanize.Comma(int64(t.TotalNodes)), humanize.Comma(int64(t.TotalEdges)), t.NumClusters, t.LargestCluster)
	if t.TotalEdges > 0 {
		fmt.Printf("  Edge strength: mean=%.2f max=%.2f\n", t.MeanStrength, t.MaxStrength)
	}

	if t.OrphanCount > 0 {
		fmt.Printf("  %s Orphans: %d episodes share too few tags to connect\n", ui.WarnIcon(), t.OrphanCount)
		limit := min(len(t.OrphanKeys), 5)
		for _, key := range t.OrphanKeys[:limit] {
			fmt.Printf("    - %s\n", truncTitle(key, 50))
		}
		if t.OrphanCount > limit {
			fmt.Printf("    ... and %d more\n", t.OrphanCount-limit)
		}
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range t.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	// Hubs
	if len(t.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree > threshold):")
		for _, hub := range t.Hubs {
			fmt.Printf("    degree=%-3d strength=%5.2f  %s\n", hub.Degree, hub.Strength, truncTitle(hub.Key, 40))
		}
	}

	if l := report.Layout; l != nil {
		fmt.Println()
		ui.Header(os.Stdout, "  LAYOUT")
		fmt.Println("  ────────────────────────────────────────")
		fmt.Printf("  After %s ticks: kinetic energy %.4f\n", humanize.Comma(int64(l.Ticks)), l.KineticEnergy)
		fmt.Printf("  Extent: x[%.1f, %.1f] y[%.1f, %.1f] z[%.1f, %.1f]\n",
			l.Min.X, l.Max.X, l.Min.Y, l.Max.Y, l.Min.Z, l.Max.Z)
		if t.TotalEdges > 0 {
			fmt.Printf("  Mean edge length: %.2f\n", l.MeanEdgeLen)
		}
	}

	fmt.Println()
}

func describeSelection(sel graph.Selection) string {
	var parts []string
	if len(sel.Categories) > 0 {
		parts = append(parts, "category="+strings.Join(sel.Categories, "|"))
	}
	if len(sel.Functions) > 0 {
		parts = append(parts, "function="+strings.Join(sel.Functions, "|"))
	}
	if len(sel.Audiences) > 0 {
		parts = append(parts, "audience="+strings.Join(sel.Audiences, "|"))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " AND ")
}
