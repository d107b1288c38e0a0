package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirsnap/internal/config"
	"dirsnap/internal/progress"
	"dirsnap/internal/snapshot"
	"dirsnap/internal/walker"
)

func newRootCmd() *cobra.Command {
	var (
		configPath      string
		ignoreHidden    bool
		ignoreSymlinks  bool
		maxDepth        int
		hideProgressBar bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "dirsnap [flags] <source> <destination>",
		Short: "Generate a browsable HTML snapshot of a directory tree",
		Long: "dirsnap walks a source directory tree and mirrors it under the destination,\n" +
			"writing one HTML report page per directory: files with sizes, subdirectories\n" +
			"with aggregated sizes linked to their own pages, and symlinks with resolved\n" +
			"targets.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Flags win over the config file, but only when actually set.
			flags := cmd.Flags()
			if !flags.Changed("ignore-hidden") {
				ignoreHidden = cfg.IgnoreHidden
			}
			if !flags.Changed("ignore-symlinks") {
				ignoreSymlinks = cfg.IgnoreSymlinks
			}
			if !flags.Changed("max-depth") {
				maxDepth = cfg.MaxDepth
			}

			opts := config.Options{
				SourcePath:      args[0],
				DestinationPath: args[1],
				IgnoreHidden:    ignoreHidden,
				IgnoreSymlinks:  ignoreSymlinks,
				MaxDepth:        maxDepth,
				HideProgressBar: hideProgressBar,
				DryRun:          dryRun,
				Exclude:         cfg.Exclude,
			}
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")
	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "Skip hidden files and directories")
	cmd.Flags().BoolVar(&ignoreSymlinks, "ignore-symlinks", false, "Skip symlinks entirely and omit the symlinks table")
	cmd.Flags().IntVarP(&maxDepth, "max-depth", "d", config.Unbounded, "Maximum recursion depth (negative = unbounded)")
	cmd.Flags().BoolVar(&hideProgressBar, "hide-progress-bar", false, "Disable the progress bar (skips the precount)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Exit after the precount, before anything is written")

	return cmd
}

func run(opts config.Options) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	srcPath, err := filepath.Abs(opts.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute source path: %w", err)
	}
	destPath, err := filepath.Abs(opts.DestinationPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute destination path: %w", err)
	}
	opts.SourcePath = srcPath
	opts.DestinationPath = destPath

	fmt.Printf("Source directory = %q\n", srcPath)
	fmt.Printf("Destination directory = %q\n\n", destPath)

	if _, err := os.Stat(srcPath); err != nil {
		// Deliberately not fatal: the run continues and the root report
		// degrades to empty tables with a 0 B footer.
		fmt.Fprintf(os.Stderr, "ERROR: source path %q does not exist!\n", srcPath)
	}

	var bar progress.Indicator = progress.Noop{}
	if !opts.HideProgressBar {
		fmt.Println("Precomputing entry count to populate the progress bar properly...")
		totalItems := walker.Count(srcPath, walker.ListOptions{
			IgnoreHidden:   opts.IgnoreHidden,
			IgnoreSymlinks: opts.IgnoreSymlinks,
			Exclude:        opts.Exclude,
		})
		fmt.Printf("Entries to process: %d\n", totalItems)
		bar = progress.New(totalItems)
	}

	if opts.DryRun {
		return nil
	}

	snap := snapshot.New(opts, log, bar)
	result, err := snap.Run()
	if err != nil {
		return fmt.Errorf("failed to generate snapshot: %w", err)
	}
	bar.Finish()

	stats := snap.Stats()
	if err := snapshot.WriteManifest(destPath, srcPath, stats); err != nil {
		return err
	}

	rootName := filepath.Base(srcPath)
	fmt.Printf("✓ Snapshot generated successfully\n")
	fmt.Printf("  Total size: %s\n", humanize.IBytes(uint64(result.Bytes)))
	fmt.Printf("  Files: %d, directories: %d, symlinks: %d\n", stats.Files, stats.Dirs, stats.Symlinks)
	fmt.Printf("  Output: %s\n", filepath.Join(destPath, rootName, rootName+".html"))

	if stats.Skipped > 0 {
		fmt.Printf("\n⚠ Skipped %d entries due to errors\n", stats.Skipped)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
