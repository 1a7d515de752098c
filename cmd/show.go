package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"episodemap/galaxy/internal/db"
	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/ui"
)

var (
	showJSON  bool
	showLimit int
)

// Neighbor is an episode connected to the shown one
type Neighbor struct {
	Key      string  `json:"key"`
	Shared   int     `json:"shared_tags"`
	Strength float64 `json:"strength"`
}

var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show an episode and the episodes it connects to",
	Long:  "Resolve <ref> by exact episode name, name prefix, or text search, then list its graph neighbours by shared-tag count.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		ep, err := ResolveEpisode(d, args[0])
		if err != nil {
			return err
		}
		items, err := d.Items()
		if err != nil {
			return err
		}
		neighbors := neighborsOf(items, ep.Key, cfg.BuildOptions())
		if showLimit > 0 && len(neighbors) > showLimit {
			neighbors = neighbors[:showLimit]
		}

		if showJSON {
			output := struct {
				Episode   *db.Episode `json:"episode"`
				Neighbors []Neighbor  `json:"neighbors"`
			}{ep, neighbors}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		}

		printEpisode(ep, neighbors)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "JSON output")
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Max neighbours to list (0 for all)")
	rootCmd.AddCommand(showCmd)
}

// neighborsOf builds the graph over items and returns the edges of key,
// strongest first.
func neighborsOf(items []*graph.Item, key string, opts graph.BuildOptions) []Neighbor {
	// positions are irrelevant here
	g := graph.BuildWith(items, newRNG(1), opts)

	idx := -1
	for i, n := range g.Nodes {
		if n.Item.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	self := g.Nodes[idx].Item
	var out []Neighbor
	for _, e := range g.Neighbors(idx) {
		other := e.Target
		if other == idx {
			other = e.Source
		}
		it := g.Nodes[other].Item
		out = append(out, Neighbor{Key: it.Key, Shared: graph.SharedCount(self, it), Strength: e.Strength})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Shared > out[j].Shared })
	return out
}

func printEpisode(ep *db.Episode, neighbors []Neighbor) {
	ui.Header(os.Stdout, ep.Key)
	if ep.Guest != "" && ep.Guest != ep.Key {
		fmt.Printf("  Guest:      %s\n", ep.Guest)
	}
	fmt.Printf("  Categories: %s\n", joinOrDash(ep.Categories))
	fmt.Printf("  Functions:  %s\n", joinOrDash(ep.Functions))
	fmt.Printf("  Audiences:  %s\n", joinOrDash(ep.Audiences))
	if ep.TranscriptRef != "" {
		fmt.Printf("  Transcript: %s\n", ui.TruncateMiddle(ep.TranscriptRef, 60))
	}

	if len(ep.Takeaways) > 0 {
		fmt.Println("\n  Key takeaways:")
		for _, t := range ep.Takeaways {
			fmt.Printf("    - %s\n", ui.Truncate(t, 100))
		}
	}
	if ep.Notes != "" {
		fmt.Printf("\n  %s\n", ui.Truncate(ep.Notes, 300))
	}

	fmt.Println()
	if len(neighbors) == 0 {
		fmt.Printf("  %s No connected episodes\n\n", ui.WarnIcon())
		return
	}
	rows := make([][]string, len(neighbors))
	for i, n := range neighbors {
		rows[i] = []string{truncTitle(n.Key, 50), fmt.Sprintf("%d", n.Shared), fmt.Sprintf("%.2f", n.Strength)}
	}
	ui.Table(os.Stdout, []string{"CONNECTED EPISODE", "SHARED", "STRENGTH"}, rows)
	fmt.Println()
}

func joinOrDash(tags []string) string {
	if len(tags) == 0 {
		return ui.Subtle.Sprint("-")
	}
	return strings.Join(tags, ", ")
}
