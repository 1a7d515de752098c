package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/ui"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the selectable categories, functions and audiences with episode counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		items, err := d.Items()
		if err != nil {
			return err
		}
		facets := graph.Facets(items)

		if tagsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(facets)
		}

		printFacet("Categories", facets.Categories)
		printFacet("Functions", facets.Functions)
		printFacet("Audiences", facets.Audiences)
		return nil
	},
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "JSON output")
	rootCmd.AddCommand(tagsCmd)
}

func printFacet(title string, values []graph.FacetValue) {
	ui.Header(os.Stdout, fmt.Sprintf("%s (%d)", title, len(values)))
	if len(values) == 0 {
		fmt.Println(ui.Subtle.Sprint("  none"))
		fmt.Println()
		return
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v.Tag, fmt.Sprintf("%d", v.Count)}
	}
	ui.Table(os.Stdout, []string{"TAG", "EPISODES"}, rows)
	fmt.Println()
}
