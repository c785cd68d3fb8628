// Command seqtool inspects, scans and renumbers frame sequences on disk or
// in Perforce.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/burninghelix123/sequences/backend"
	"github.com/burninghelix123/sequences/internal/config"
	"github.com/burninghelix123/sequences/internal/logging"
)

// Overridden via ldflags at release time.
var version = "dev"

// app carries the shared state the subcommands run against.
type app struct {
	cfg      config.Config
	log      *logging.Logger
	registry *backend.Registry
	session  *backend.Session
}

func (a *app) setup(cfgPath string, verbose bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	a.cfg = cfg

	lg, err := logging.New(&cfg)
	if err != nil {
		return err
	}
	a.log = lg

	a.registry = backend.DefaultRegistry()
	if cfg.P4.Enabled {
		sess, err := backend.OpenSession(backend.SessionOptions{
			Binary: cfg.P4.Binary,
			Port:   cfg.P4.Port,
			User:   cfg.P4.User,
			Client: cfg.P4.Client,
		})
		if err != nil {
			return fmt.Errorf("perforce: %w", err)
		}
		a.session = sess
		a.registry.Register(backend.NewPerforce(sess), backend.PriorityPerforce)
		lg.Debug("perforce session open", "root", sess.Root())
	}
	return nil
}

func (a *app) shutdown() {
	if a.session != nil {
		_ = a.session.Close()
	}
	if a.log != nil {
		_ = a.log.Close()
	}
}

func main() {
	a := &app{}
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:   "seqtool",
		Short: "Inspect and renumber frame sequences",
		Long: "seqtool works with families of files that differ only by a " +
			"fixed-width number, such as render frames. It indexes them, " +
			"reports ranges and gaps, and renumbers or repads them safely.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cfgPath, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.shutdown()
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInfoCmd(a),
		newScanCmd(a),
		newRenameCmd(a),
		newCheckCmd(a),
	)

	if err := fang.Execute(context.Background(), root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
