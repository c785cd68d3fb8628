package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/burninghelix123/sequences"
)

func newScanCmd(a *app) *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Find the sequences under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := sequences.ScanFiles(args[0], recursive)
			if err != nil {
				return err
			}
			a.log.Debug("scanned", "files", len(files))

			flat := sequences.Flatten(files,
				sequences.WithRegistry(a.registry),
				sequences.WithKey(a.cfg.FormatKey))
			keys := make([]string, 0, len(flat))
			for k := range flat {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			found := 0
			for _, k := range keys {
				seq := flat[k]
				if seq == nil {
					a.log.Debug("not a sequence", "path", k)
					continue
				}
				rs, err := seq.RangeString()
				if err != nil {
					return err
				}
				count, err := seq.Len()
				if err != nil {
					return err
				}
				found++
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]  %d items\n", k, rs, count)
			}
			a.log.Info("scan complete", "files", len(files), "sequences", found)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	return cmd
}
