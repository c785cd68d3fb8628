package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burninghelix123/sequences"
	"github.com/burninghelix123/sequences/internal/display"
)

func newRenameCmd(a *app) *cobra.Command {
	var (
		padding       int
		start         int
		ignoreMissing bool
		overwrite     bool
		dryRun        bool
	)
	cmd := &cobra.Command{
		Use:   "rename PATH",
		Short: "Renumber or repad a sequence",
		Long: "Renumber a sequence so its first item gets --start, repad it " +
			"to --padding, or both. Moves are ordered so no item overwrites " +
			"a sibling, and a failed move rolls back the completed ones.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := sequences.NewFile(args[0],
				sequences.WithRegistry(a.registry),
				sequences.WithKey(a.cfg.FormatKey))
			if err != nil {
				return err
			}

			opts := sequences.RenameOptions{
				Padding:       padding,
				IgnoreMissing: ignoreMissing,
				Overwrite:     overwrite,
				DryRun:        dryRun,
			}
			if cmd.Flags().Changed("start") {
				opts.Start = &start
			}

			plan, err := seq.PlanRename(opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.PlanTable(plan, dryRun))
			if plan == nil {
				return nil
			}

			opts.Progress = func(done, total int) {
				a.log.Debug("moved", "done", done, "total", total)
			}
			if err := seq.Apply(plan, opts); err != nil {
				return err
			}
			if !dryRun {
				a.log.Info("rename complete", "source", seq.Source(), "moves", len(plan.Moves))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&padding, "padding", 0, "destination slot width (0 keeps the current width)")
	cmd.Flags().IntVar(&start, "start", 0, "new number for the first item")
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "allow renaming a gapped sequence")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing destinations")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "plan and validate without moving files")
	return cmd
}
