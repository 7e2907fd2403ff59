package main

import (
	"fmt"
	"io"

	"mindfulpause/internal/config"
	"mindfulpause/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var practicesMicro bool

var practicesCmd = &cobra.Command{
	Use:   "practices",
	Short: "Manage the practice texts shown during pauses",
	Long: `Practices are shown during big breaks; micro-practices (--micro) are shown
during short pauses. Both lists are plain YAML files in the data directory.`,
}

var practicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List practices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPracticeStore()
		if err != nil {
			return err
		}
		return listPractices(cmd.OutOrStdout(), store, practiceKind())
	},
}

var practicesAddCmd = &cobra.Command{
	Use:     "add TEXT...",
	Short:   "Add one practice per argument",
	Example: `  mindfulpause practices add "Stretch your shoulders" --micro`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPracticeStore()
		if err != nil {
			return err
		}
		kind := practiceKind()
		for _, text := range args {
			if err := store.Add(kind, text); err != nil {
				return fmt.Errorf("add practice %q: %w", text, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d to %s\n", len(args), store.Path(kind))
		return nil
	},
}

var practicesRemoveCmd = &cobra.Command{
	Use:   "remove TEXT...",
	Short: "Remove every practice equal to one of the arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPracticeStore()
		if err != nil {
			return err
		}
		removed, err := store.Delete(practiceKind(), args...)
		if err != nil {
			return fmt.Errorf("remove practices: %w", err)
		}
		if removed == 0 {
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No matching practice found")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d\n", removed)
		return nil
	},
}

func init() {
	practicesCmd.PersistentFlags().BoolVar(&practicesMicro, "micro", false, "Use the short-pause micro-practices")
	practicesCmd.AddCommand(practicesListCmd, practicesAddCmd, practicesRemoveCmd)
	rootCmd.AddCommand(practicesCmd)
}

func practiceKind() storage.PracticeKind {
	if practicesMicro {
		return storage.PracticesMicro
	}
	return storage.PracticesBig
}

func openPracticeStore() (*storage.PracticeStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	store := storage.NewPracticeStore(cfg.DataDir, quietLogger())
	if err := store.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("prepare practices: %w", err)
	}
	return store, nil
}

func listPractices(out io.Writer, store *storage.PracticeStore, kind storage.PracticeKind) error {
	practices, err := store.List(kind)
	if err != nil {
		return fmt.Errorf("list practices: %w", err)
	}
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(out, "%s (%s)\n", kind, store.Path(kind))
	if len(practices) == 0 {
		color.New(color.FgYellow).Fprintln(out, "  (empty)")
		return nil
	}
	for index, practice := range practices {
		fmt.Fprintf(out, "  %2d. %s\n", index+1, practice)
	}
	return nil
}
