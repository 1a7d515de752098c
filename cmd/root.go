package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"episodemap/galaxy/internal/config"
	"episodemap/galaxy/internal/db"
	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/logger"
	"episodemap/galaxy/internal/ui"
)

const dbFileName = ".galaxy.db"

var (
	dbPath     string
	configFile string
	noColor    bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:           "galaxy",
	Short:         "Episode galaxy: tag-similarity graph with live force-directed layout",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Init(cfg.Env); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		ui.SetColor(cfg.UI.Color && !noColor)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to "+dbFileName+" database")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config.toml (default: $XDG_CONFIG_HOME/galaxy/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// DiscoverDB finds the database path using priority: env > flag > config > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("GALAXY_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Config file
	if cfg.DB != "" {
		if _, err := os.Stat(cfg.DB); err == nil {
			return cfg.DB, nil
		}
	}

	// 4. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbFileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 5. XDG fallback
	if xdgPath := dataPath(); xdgPath != "" {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no %s found (run `galaxy import`, set GALAXY_DB, or use --db)", dbFileName)
}

// importTarget is where import writes: an explicit path, an existing
// database, or a new one in the working directory.
func importTarget() string {
	if dbPath != "" {
		return dbPath
	}
	if envPath := os.Getenv("GALAXY_DB"); envPath != "" {
		return envPath
	}
	if path, err := DiscoverDB(); err == nil {
		return path
	}
	if cfg.DB != "" {
		return cfg.DB
	}
	return dbFileName
}

func dataPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "galaxy", "galaxy.db")
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("Opening database", zap.String("path", path))
	return db.OpenDB(path)
}

// ResolveEpisode finds an episode by exact key, key prefix, or text search.
func ResolveEpisode(d *db.DB, reference string) (*db.Episode, error) {
	// 1. Exact key match
	ep, err := d.GetEpisode(reference)
	if err == nil {
		return ep, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	// 2. Key prefix match (>= 3 chars)
	if len(reference) >= 3 {
		matches, err := d.SearchByKeyPrefix(reference, 10)
		if err == nil {
			switch len(matches) {
			case 1:
				return &matches[0], nil
			case 0:
				// fall through to text search
			default:
				return nil, ambiguous(reference, matches, "Use the full episode name instead.")
			}
		}
	}

	// 3. Full-text search
	results, err := d.SearchEpisodes(reference)
	if err == nil {
		switch len(results) {
		case 1:
			return &results[0], nil
		case 0:
			// fall through to not found
		default:
			return nil, ambiguous(reference, results, "Use an episode name instead.")
		}
	}

	return nil, fmt.Errorf("%w: %s", db.ErrNotFound, reference)
}

func ambiguous(reference string, matches []db.Episode, hint string) error {
	limit := min(len(matches), 10)
	lines := make([]string, limit)
	for i := 0; i < limit; i++ {
		lines[i] = fmt.Sprintf("  %s", truncTitle(matches[i].Key, 60))
		if matches[i].Guest != "" && matches[i].Guest != matches[i].Key {
			lines[i] += fmt.Sprintf(" (%s)", matches[i].Guest)
		}
	}
	return fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\n%s",
		reference, len(matches), strings.Join(lines, "\n"), hint)
}

// Selection flags shared by analyze and layout
var (
	selCategories []string
	selFunctions  []string
	selAudiences  []string
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&selCategories, "category", nil, "Keep episodes with any of these categories (repeatable, comma-separated)")
	cmd.Flags().StringSliceVar(&selFunctions, "function", nil, "Keep episodes with any of these functions")
	cmd.Flags().StringSliceVar(&selAudiences, "audience", nil, "Keep episodes with any of these audiences")
}

func selectionFromFlags() graph.Selection {
	return graph.Selection{
		Categories: cleanTags(selCategories),
		Functions:  cleanTags(selFunctions),
		Audiences:  cleanTags(selAudiences),
	}
}

// cleanTags trims tags and drops empties; nil when nothing remains
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// loadScene builds a scene from every stored episode using configured parameters
func loadScene(d *db.DB, seed uint64) (*graph.Scene, error) {
	items, err := d.Items()
	if err != nil {
		return nil, fmt.Errorf("loading episodes: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("database %s has no episodes; run `galaxy import` first", d.Path)
	}
	scene := graph.NewScene(items, cfg.BuildOptions(), cfg.Layout, newRNG(seed))
	logger.Get().Debug("Scene built",
		zap.Int("nodes", len(scene.Full().Nodes)),
		zap.Int("edges", len(scene.Full().Edges)),
	)
	return scene, nil
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// back up to a rune boundary
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
