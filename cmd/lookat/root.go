package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"lookat/internal/browse"
	"lookat/internal/config"
	"lookat/internal/cursor"
	"lookat/internal/errors"
	"lookat/internal/log"
	"lookat/internal/tui"
	"lookat/internal/watch"
)

// app carries the flags and the loaded configuration shared by all
// commands.
type app struct {
	cfgFile string
	debug   bool
	logFile string
	recurse bool
	subdirs bool
	glob    string
	stdin   bool
	sortBy  string
	noWatch bool

	cfg *config.Config
	fs  billy.Filesystem
	in  io.Reader
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{fs: osfs.New("/")}

	rootCmd := &cobra.Command{
		Use:   "lookat [paths...]",
		Short: "View a list of files one at a time",
		Long: `lookat shows files one after another in the terminal.

Give it files and directories, a glob, or a list of paths on stdin. Step
through them with n and p, search across them with /, and reorder or
filter the list while viewing. Each file remembers where you were.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.in = cmd.InOrStdin()
			a.loadConfig(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runViewer(args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/lookat/config.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&a.recurse, "recurse", "r", false, "descend into subdirectories")
	flags.BoolVar(&a.subdirs, "subdirs", false, "show the scanned directories in the header")
	flags.StringVarP(&a.glob, "glob", "g", "", "add the files matching a glob")
	flags.BoolVar(&a.stdin, "stdin", false, "add the paths read from stdin, one per line")
	flags.StringVarP(&a.sortBy, "sort", "s", "", "sort the files ("+strings.Join(browse.Comparators(), ", ")+")")
	rootCmd.Flags().BoolVar(&a.noWatch, "no-watch", false, "do not reload the current file when it changes")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// loadConfig reads the configuration and applies the flags over it. A
// broken configuration file falls back to the defaults.
func (a *app) loadConfig(cmd *cobra.Command) {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfigFile(a.cfgFile)
	} else {
		a.cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Using default settings. Run 'lookat config init' to write a configuration.")
		a.cfg = config.New()
	}

	flags := cmd.Flags()
	if flags.Changed("recurse") {
		a.cfg.Filter.Recurse = a.recurse
	}
	if flags.Changed("subdirs") {
		a.cfg.Header.ShowSubdirectories = a.subdirs
	}
	if flags.Changed("log-file") {
		a.cfg.Log.File = a.logFile
	}
	if a.sortBy != "" {
		a.cfg.Viewer.DefaultSort = a.sortBy
	}
}

// setupLogging configures the process logger. The viewer owns the screen,
// so it only logs to a file.
func (a *app) setupLogging(viewer bool) {
	opts := []log.Option{log.WithLevel(a.cfg.Log.Level)}
	if a.cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if viewer {
		opts = append(opts, log.WithOutput(io.Discard))
	}
	if a.cfg.Log.File != "" {
		opts = append(opts, log.WithFile(a.cfg.Log.File))
	}
	log.Configure(opts...)
	log.SetDebug(a.debug)
}

// lineMarker supplies the non-blank lines of a reader as marked paths.
type lineMarker struct {
	r io.Reader
}

func (m lineMarker) ListMarkedPaths() ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(m.r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}

// load fills the session from the arguments, the glob and stdin, in that
// order, and applies the configured sort. Without any source the current
// directory is loaded.
func (a *app) load(s *browse.Session, args []string) error {
	fc := a.cfg.FilterConfig()
	mode := cursor.Replace
	next := func() cursor.LoadMode {
		m := mode
		mode = cursor.Append
		return m
	}

	if len(args) == 0 && a.glob == "" && !a.stdin {
		args = []string{"."}
	}
	if len(args) > 0 {
		if err := keepDisplayErrors(s.LoadFiles(args, next(), fc)); err != nil {
			return err
		}
	}
	if a.glob != "" {
		if err := keepDisplayErrors(s.LoadGlob(a.glob, next(), fc)); err != nil {
			return err
		}
	}
	if a.stdin {
		if err := keepDisplayErrors(s.LoadMarked(lineMarker{r: a.in}, next(), fc)); err != nil {
			return err
		}
	}

	name := a.cfg.Viewer.DefaultSort
	if name == "" {
		return nil
	}
	if !browse.HasComparator(name) {
		return errors.NewNavigationError("unknown comparator "+name, "sort", errors.InvalidComparator, nil)
	}
	if len(s.Paths()) == 0 {
		return nil
	}
	return keepDisplayErrors(s.Sort(name))
}

// keepDisplayErrors drops errors about displaying a file; the working set
// was still loaded and the viewer shows the problem itself.
func keepDisplayErrors(err error) error {
	if browse.IsDisplayError(err) {
		log.LogWithError(err).Warn("cannot display file")
		return nil
	}
	return err
}

func (a *app) runViewer(args []string) error {
	a.setupLogging(true)

	var opts []tui.Option
	if a.cfg.Viewer.Watch && !a.noWatch {
		w, err := watch.New()
		if err != nil {
			log.LogWithError(err).Warn("file watching disabled")
		} else if err := w.Start(); err != nil {
			log.LogWithError(err).Warn("file watching disabled")
		} else {
			defer w.Stop()
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	m := tui.New(a.fs, a.cfg, opts...)
	if err := a.load(m.Session(), args); err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.stdin {
		// stdin held the paths, keys come from the terminal
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}
	return nil
}
