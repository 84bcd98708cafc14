// Package main is the entry point for splicefmt.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/rules"
	"github.com/donaldgifford/splicefmt/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	code := runner.ExitOK
	root := newRootCmd(&code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "splicefmt: %v\n", err)
		return runner.ExitError
	}
	return code
}

func newRootCmd(code *int) *cobra.Command {
	opts := &runner.Options{}

	root := &cobra.Command{
		Use:   "splicefmt [flags] [files...]",
		Short: "Format JavaScript and splice templates into it",
		Long: `splicefmt formats JavaScript sources. With no files, it reads from stdin
and writes to stdout; with files, it rewrites them in place.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			*code = runner.Run(cmd.Context(), opts)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print files as they are processed")
	formatFlags(root, opts)

	root.AddCommand(
		newFmtCmd(code, opts),
		newSpliceCmd(code, opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// formatFlags registers the flags shared by every formatting command.
func formatFlags(cmd *cobra.Command, opts *runner.Options) {
	f := cmd.Flags()
	f.BoolVar(&opts.Check, "check", false, "exit 1 if any file is not formatted")
	f.BoolVar(&opts.Diff, "diff", false, "print unified diff of changes")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	f.BoolVar(&opts.External, "external", false, "run the configured external formatter")
	f.BoolVar(&opts.Watch, "watch", false, "reformat files when they change")
}

func newFmtCmd(code *int, opts *runner.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] [files...]",
		Short: "Format files or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			*code = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	formatFlags(cmd, opts)
	return cmd
}

func newSpliceCmd(code *int, opts *runner.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splice --recipe FILE [flags] [files...]",
		Short: "Apply a splice recipe, then format",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			*code = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	formatFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "path to a YAML splice recipe")
	_ = cmd.MarkFlagRequired("recipe")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rules",
		Short: "List the format rules in execution order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range rules.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "splicefmt %s (%s) %s\n", version, commit, date)
		},
	}
}
