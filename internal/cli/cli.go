package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bluby/brew-parser/internal/brewapi"
	"github.com/bluby/brew-parser/internal/formula"
	"github.com/bluby/brew-parser/internal/homepage"
	"github.com/bluby/brew-parser/internal/logger"
	"github.com/bluby/brew-parser/internal/render"
	"github.com/bluby/brew-parser/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1

	// DefaultDataDir is where snapshots live unless --data-dir overrides it.
	DefaultDataDir = "~/.brew-parser"
)

var (
	flagDataDir string
	flagDebug   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		flagDays  int
		flagLimit int
	)

	root := &cobra.Command{
		Use:   "brew-parser",
		Short: "Discover and track new Homebrew formulas",
		Long: `A CLI tool to discover and track new Homebrew formulas.
Fetches formula metadata from the Homebrew API, keeps a local snapshot,
and reports additions, removals, and version changes between runs.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(flagDays, flagLimit)
		},
	}

	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", DefaultDataDir, "Data directory for stored snapshots")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.Flags().IntVar(&flagDays, "days", 7, "Number of days to look back (not yet implemented)")
	root.Flags().IntVar(&flagLimit, "limit", 0, "Limit number of formulas to display")

	root.AddCommand(newUpdateCmd(), newDiffCmd(), newNewCmd(), newInfoCmd())

	return root
}

// runList is the default mode: fetch everything and render it as Markdown.
func runList(days, limit int) error {
	logger.IncrCounter("commands.list")

	formulas, err := fetchAll()
	if err != nil {
		return err
	}

	formulas = filterNewFormulas(formulas, days)
	formulas = applyLimit(formulas, limit)

	fmt.Print(render.Markdown(formulas))
	logMetrics()
	return nil
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update local formula database with current data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.IncrCounter("commands.update")

			store, err := newStore()
			if err != nil {
				return err
			}

			formulas, err := fetchAll()
			if err != nil {
				return err
			}

			changed, summary, err := store.Save(formulas)
			if err != nil {
				return fmt.Errorf("saving snapshot: %w", err)
			}

			logger.Debug("Snapshot saved", logger.Fields{"changed": changed, "count": len(formulas)})
			fmt.Println(summary)
			logMetrics()
			return nil
		},
	}
}

func newDiffCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show all changes (added/removed/updated) since last update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.IncrCounter("commands.diff")

			format := strings.ToLower(flagFormat)
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
			}

			stored, err := loadBaseline()
			if err != nil {
				return err
			}

			current, err := fetchAll()
			if err != nil {
				return err
			}

			diff := formula.Compare(stored, current)

			if format == "json" {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(diff); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			} else if err := render.Tables(os.Stdout, diff); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			logMetrics()
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func newNewCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Show only newly added formulas since last update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.IncrCounter("commands.new")

			stored, err := loadBaseline()
			if err != nil {
				return err
			}

			current, err := fetchAll()
			if err != nil {
				return err
			}

			diff := formula.Compare(stored, current)
			added := applyLimit(diff.Added, flagLimit)

			if len(added) == 0 {
				fmt.Println("No new formulas since last update.")
			} else {
				fmt.Print(render.MarkdownWithTitle("# Newly Added Homebrew Formulas", added))
			}

			logMetrics()
			return nil
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Limit number of new formulas to display")
	return cmd
}

func newInfoCmd() *cobra.Command {
	var flagPreview bool

	cmd := &cobra.Command{
		Use:   "info <formula>",
		Short: "Show details for a single formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.IncrCounter("commands.info")
			name := strings.TrimSpace(args[0])

			client := brewapi.New()
			f, err := client.GetFormula(name)
			if err != nil {
				if errors.Is(err, brewapi.ErrNotFound) {
					return fmt.Errorf("formula %q not found", name)
				}
				return fmt.Errorf("fetching formula details: %w", err)
			}

			fmt.Print(render.FormulaSection(*f))

			if flagPreview && f.Homepage != "" {
				preview, err := homepage.NewFetcher().Fetch(f.Homepage)
				if err != nil {
					logger.Warn("Could not fetch homepage preview", logger.Fields{"url": f.Homepage, "error": err.Error()})
				} else {
					if preview.Title != "" {
						fmt.Printf("**Page title:** %s  \n", preview.Title)
					}
					if preview.Description != "" {
						fmt.Printf("**Page description:** %s  \n", preview.Description)
					}
				}
			}

			logMetrics()
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagPreview, "preview-homepage", false, "Fetch the formula homepage and show its title and description")
	return cmd
}

// newStore builds the snapshot store from the --data-dir flag.
func newStore() (*storage.Store, error) {
	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// loadBaseline loads the stored snapshot, failing with a hint to run
// "update" when no usable baseline exists.
func loadBaseline() ([]formula.Formula, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}

	stored, ok := store.Load()
	if !ok {
		return nil, fmt.Errorf("no stored formula data found; run 'brew-parser update' first to establish a baseline")
	}

	logger.Debug("Loaded baseline snapshot", logger.Fields{"count": len(stored)})
	return stored, nil
}

// fetchAll fetches the current formula list, recording the fetch latency.
func fetchAll() ([]formula.Formula, error) {
	client := brewapi.New()

	start := time.Now()
	formulas, err := client.FetchAll()
	logger.RecordTiming("api.fetch_all", time.Since(start))
	if err != nil {
		return nil, err
	}

	return formulas, nil
}

// filterNewFormulas is a placeholder for date-based filtering. The Homebrew
// API doesn't expose formula creation dates, so every formula passes
// through unchanged.
func filterNewFormulas(formulas []formula.Formula, days int) []formula.Formula {
	logger.Warn("Date filtering not yet implemented - showing all formulas", logger.Fields{
		"days": days,
	})
	return formulas
}

func applyLimit(formulas []formula.Formula, limit int) []formula.Formula {
	if limit > 0 && len(formulas) > limit {
		return formulas[:limit]
	}
	return formulas
}

// logMetrics dumps the collected metrics at debug level.
func logMetrics() {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
