package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burninghelix123/sequences"
	"github.com/burninghelix123/sequences/internal/display"
)

func newInfoCmd(a *app) *cobra.Command {
	var (
		image bool
		key   string
	)
	cmd := &cobra.Command{
		Use:   "info PATH",
		Short: "Describe the sequence a path belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				if image {
					key = a.cfg.FrameKey
				} else {
					key = a.cfg.FormatKey
				}
			}
			opts := []sequences.Option{
				sequences.WithRegistry(a.registry),
				sequences.WithKey(key),
			}
			var (
				seq *sequences.Sequence
				err error
			)
			if image {
				seq, err = sequences.NewImage(args[0], opts...)
			} else {
				seq, err = sequences.NewFile(args[0], opts...)
			}
			if err != nil {
				return err
			}
			a.log.Debug("resolved sequence",
				"provider", seq.Provider().Name(),
				"flavor", seq.Flavor().String())

			out, err := display.SequenceSummary(seq)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&image, "image", false, "require an image extension and the frame key")
	cmd.Flags().StringVar(&key, "key", "", "format placeholder key override")
	return cmd
}
