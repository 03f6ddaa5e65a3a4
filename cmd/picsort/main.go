package main

import (
	"fmt"
	"os"

	"picsort/internal/app"
	"picsort/internal/config"
	"picsort/internal/sorter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when no
// config file exists yet. Flag values are merged in by the commands.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	if _, err := os.Stat(defaults["config_path"]); os.IsNotExist(err) {
		return config.NewConfig(defaults["base_dir"]), nil
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults["log_dir"]
	}
	return cfg, nil
}

// mergeFlags copies any explicitly-set flags over the file config.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("source") {
		cfg.Source, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("target") {
		cfg.Target, _ = cmd.Flags().GetString("target")
	}
	if cmd.Flags().Changed("by") {
		cfg.SortBy, _ = cmd.Flags().GetString("by")
	}
	if cmd.Flags().Changed("structure") {
		cfg.Structure, _ = cmd.Flags().GetString("structure")
	}
	if cmd.Flags().Changed("rename") {
		cfg.Rename, _ = cmd.Flags().GetBool("rename")
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	if cmd.Flags().Changed("move") {
		move, _ := cmd.Flags().GetBool("move")
		cfg.KeepOriginal = !move
	}
}

// runSort wires an App, starts a run, and renders its event stream.
func runSort(cmd *cobra.Command, operation string, forceDryRun bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mergeFlags(cmd, cfg)
	if forceDryRun {
		cfg.DryRun = true
	}

	a, err := app.NewApp(cmd.Context(), cfg, operation)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer a.Close()

	events, err := a.Sort(cmd.Context())
	if err != nil {
		return err
	}

	return renderEvents(a, events, cfg.DryRun)
}

// renderEvents consumes the run's event stream. On a terminal, progress
// is rendered as a single updating line; otherwise one line per file.
func renderEvents(a *app.App, events <-chan sorter.Event, dryRun bool) error {
	tty := term.IsTerminal(int(os.Stdout.Fd()))

	sorted, failed := 0, 0
	for e := range events {
		a.Observe(e)

		switch e.Kind {
		case sorter.RunStarted:
			if dryRun {
				fmt.Println("Dry run: no files will be copied or moved.")
			}
		case sorter.ItemSorted:
			sorted++
			if tty {
				fmt.Printf("\r[%3d%%] %s", e.Percent, e.Destination)
			} else {
				fmt.Printf("%s -> %s\n", e.Source, e.Destination)
			}
		case sorter.ItemFailed:
			failed++
			if tty {
				fmt.Println()
			}
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.Source, e.Err)
		case sorter.RunCompleted:
			if tty {
				fmt.Println()
			}
			fmt.Printf("Sorted %d file(s), %d failed.\n", sorted, failed)
			if failed > 0 {
				fmt.Fprintf(os.Stderr, "Details are in the log under run %s.\n", a.RunID())
			}
		case sorter.RunCanceled:
			if tty {
				fmt.Println()
			}
			fmt.Printf("Canceled after %d file(s).\n", sorted+failed)
		}
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "picsort",
	Short: "Sort image files by capture date, name or size",
}

// sort command
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort images from source into target",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSort(cmd, "Sort", false)
	},
}

// plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show planned destinations without touching any file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSort(cmd, "Plan", true)
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Source:    %s\n", cfg.Source)
		fmt.Printf("Target:    %s\n", cfg.Target)
		fmt.Printf("Sort by:   %s\n", cfg.SortBy)
		fmt.Printf("Structure: %s\n", cfg.Structure)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		return nil
	},
}

func addSortFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "", "Source directory to enumerate")
	cmd.Flags().StringP("target", "t", "", "Target directory (or key prefix for s3)")
	cmd.Flags().String("by", "date", "Sort criterion: date, name or size")
	cmd.Flags().String("structure", "", "Date-token structure template, e.g. YYYY/MM/DD")
	cmd.Flags().Bool("rename", false, "Rename files to their capture timestamp")
	cmd.Flags().Bool("overwrite", false, "Overwrite existing destination files")
	cmd.Flags().Bool("move", false, "Move files instead of copying")
}

func init() {
	addSortFlags(sortCmd)
	sortCmd.Flags().Bool("dry-run", false, "Plan and report without touching any file")
	addSortFlags(planCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
}
