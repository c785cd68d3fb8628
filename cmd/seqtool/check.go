package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burninghelix123/sequences/internal/display"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Report the configured backends, and which one owns a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, display.Banner(version))
			fmt.Fprintf(out, "format key  %s\n", a.cfg.FormatKey)
			fmt.Fprintf(out, "frame key   %s\n", a.cfg.FrameKey)

			for _, p := range a.registry.Providers() {
				fmt.Fprintf(out, "backend     %s\n", p.Name())
			}
			if a.session != nil {
				fmt.Fprintf(out, "p4 root     %s\n", a.session.Root())
			} else if a.cfg.P4.Enabled {
				fmt.Fprintln(out, "p4          enabled but no session")
			} else {
				fmt.Fprintln(out, "p4          disabled")
			}

			if len(args) == 1 {
				p := a.registry.Resolve(args[0])
				if p == nil {
					return fmt.Errorf("no backend accepts %q", args[0])
				}
				tracked, err := p.Tracked(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s is handled by %s (tracked: %v)\n", args[0], p.Name(), tracked)
			}
			return nil
		},
	}
	return cmd
}
