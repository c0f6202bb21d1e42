package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"renamer/internal/collision"
	"renamer/internal/journal"
	"renamer/internal/matcher"
	"renamer/internal/output"
	"renamer/internal/watcher"
)

var watchFlags struct {
	settleSeconds int
}

var watchCmd = &cobra.Command{
	Use:   "watch <location> <find> [replace]",
	Short: "Watch a directory tree and rename matching arrivals",
	Long: `watch monitors the root path with filesystem notifications and applies
the find/replace rule to files as they arrive. Each arrival gets a settle
window so files still being written are left alone. Directories are never
renamed in watch mode. Stop with an interrupt (Ctrl-C).`,
	Args:          cobra.RangeArgs(2, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchFlags.settleSeconds, "settle", 2, "Seconds a new file must stay quiet before it is renamed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	console := output.New(output.DefaultConfig())
	o := buildOptions(args)
	o.Backup = false
	o.DryRun = false
	if abs, err := filepath.Abs(o.Root); err == nil {
		o.Root = abs
	}
	if err := o.Validate(); err != nil {
		return err
	}

	m, err := matcher.New(o.Match)
	if err != nil {
		return err
	}

	j := journal.New(o.LogDir, o.Verbose, o.JSONLog, journal.RunConfig{
		CaseSensitive: o.Match.CaseSensitive,
		Regex:         o.Match.Regex,
		Extensions:    o.Filter.Extensions,
	})
	defer j.Close()

	w := watcher.New(time.Duration(watchFlags.settleSeconds)*time.Second, func(path string) (bool, error) {
		dir, name := filepath.Split(path)
		if !o.Filter.AllowsExtension(filepath.Ext(name)) {
			return false, nil
		}
		matched, newName := m.Rename(name)
		if !matched {
			return false, nil
		}
		dst := collision.Resolve(filepath.Join(dir, newName))
		if err := os.Rename(path, dst); err != nil {
			j.RecordRenameError(path, dst, false, "other", err.Error())
			return false, err
		}
		j.RecordRename(path, dst, false)
		console.Info("RENAMED: %s -> %s", path, dst)
		return true, nil
	})

	if err := w.Start(o.Root); err != nil {
		return err
	}
	console.Info("Watching %s (Ctrl-C to stop)...", o.Root)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	signal.Stop(interrupt)

	summary := w.Stop()
	console.Info("\nWatch session ended after %s.", summary.Duration.Round(time.Second))
	console.Info("  Renamed : %d", summary.Renamed)
	console.Info("  Skipped : %d", summary.Skipped)
	console.Info("  Errors  : %d", summary.Errors)
	j.RecordSummary(journal.Counts{
		Found:   summary.Renamed + summary.Skipped + summary.Errors,
		Renamed: summary.Renamed,
		Skipped: summary.Skipped,
		Errors:  summary.Errors,
	})
	return nil
}
