package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lookat/internal/analysis"
	"lookat/internal/browse"
	"lookat/internal/tui"
	"lookat/internal/viewstate"
)

// listHost satisfies browse.Host without displaying anything.
type listHost struct {
	surface *tui.Surface
}

func (h listHost) DisplayFile(string) (viewstate.Kind, error) { return viewstate.KindUnknown, nil }
func (h listHost) Surface() viewstate.Surface                 { return h.surface }
func (h listHost) ShowHeader(string)                          {}
func (h listHost) ShowExhausted(browse.Direction, string)     {}

func newListCmd(a *app) *cobra.Command {
	var (
		long     bool
		relative bool
	)

	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "Print the files the viewer would show",
		Long: `Print the working set built from the arguments, one path per line, in
viewing order. The output can be piped back with 'lookat --stdin'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(false)

			host := listHost{surface: tui.NewSurface(0, 0, lipgloss.NewStyle())}
			s := browse.New(a.fs, host, browse.WithFilterConfig(a.cfg.FilterConfig()))
			if err := a.load(s, args); err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), a, s, long, relative)
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show kind and size")
	cmd.Flags().BoolVar(&relative, "relative", false, "print paths relative to the common directory")

	return cmd
}

func printList(w io.Writer, a *app, s *browse.Session, long, relative bool) error {
	engine := analysis.New(a.fs)
	for _, path := range s.Paths() {
		name := path
		if relative {
			name = s.Relative(path)
		}
		if !long {
			fmt.Fprintln(w, name)
			continue
		}

		info, err := engine.Scan(path)
		if err != nil {
			fmt.Fprintf(w, "%-8s %10s  %s\n", "?", "-", name)
			continue
		}
		fmt.Fprintf(w, "%-8s %10s  %s\n", info.Kind, humanize.IBytes(uint64(info.Size)), name)
	}
	return nil
}
