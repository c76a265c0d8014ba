package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/resource"
)

var browseVersion string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through lineups interactively",
	Long: `Page through lineups interactively. Commands:
  n          next page
  p          previous page
  /text      filter by name (a bare / clears it)
  v <code>   switch game version
  s <size>   change page size
  r          refresh the current page
  q          quit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseVersion, "version", "", "initial game version (default: latest active season)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	in := lineups.NewFilters(resolveVersion(ctx, browseVersion), 1, cfg.Lineups.PageSize, "")
	h := lineups.New(apiClient, in, hookOptions()...)
	defer h.Close()

	b := &browser{hook: h, filters: in, out: cmd.OutOrStdout()}
	return b.run(ctx, cmd.InOrStdin())
}

// browser drives a lineup hook from line commands
type browser struct {
	hook    *resource.Paginated[lineups.Lineup]
	filters lineups.Filters
	out     io.Writer
}

func (b *browser) run(ctx context.Context, r io.Reader) error {
	cancel := b.hook.Subscribe(func(s resource.State[lineups.Lineup]) {
		if s.Status == resource.StatusLoading {
			logger.Debug().Str("key", string(s.Key)).Msg("Loading")
		}
	})
	defer cancel()

	b.hook.Start(ctx)
	b.render()

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}

		quit, err := b.handle(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(b.out, "%v\n", err)
			continue
		}
		if quit {
			return nil
		}
		b.render()
	}
}

// handle applies one command to the filters. It reports whether the
// browser should exit.
func (b *browser) handle(ctx context.Context, line string) (bool, error) {
	switch {
	case line == "":
		return false, nil
	case line == "q" || line == "quit":
		return true, nil
	case line == "n":
		view, _ := b.hook.View()
		if !view.HasNext() {
			return false, fmt.Errorf("already on the last page")
		}
		b.filters.Page.Update(func(p int) int { return p + 1 })
	case line == "p":
		if b.filters.Page.Get() <= 1 {
			return false, fmt.Errorf("already on the first page")
		}
		b.filters.Page.Update(func(p int) int { return p - 1 })
	case line == "r":
		b.hook.Refresh(ctx)
	case strings.HasPrefix(line, "/"):
		b.filters.Page.Set(1)
		b.filters.Name.Set(strings.TrimSpace(line[1:]))
	case strings.HasPrefix(line, "v "):
		version := strings.TrimSpace(line[2:])
		if version == "" {
			return false, fmt.Errorf("usage: v <code>")
		}
		b.filters.Page.Set(1)
		b.filters.Version.Set(version)
	case strings.HasPrefix(line, "s "):
		size, err := strconv.Atoi(strings.TrimSpace(line[2:]))
		if err != nil || size < 1 {
			return false, fmt.Errorf("usage: s <size>")
		}
		b.filters.Page.Set(1)
		b.filters.Size.Set(size)
	default:
		return false, fmt.Errorf("unknown command %q", line)
	}
	return false, nil
}

func (b *browser) render() {
	b.hook.Wait()

	fmt.Fprintf(b.out, "Version %s", b.filters.Version.Get())
	if name := b.filters.Name.Get(); name != "" {
		fmt.Fprintf(b.out, ", name %q", name)
	}
	fmt.Fprintln(b.out)

	if err := b.hook.Err(); err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
	}

	view, ok := b.hook.View()
	if !ok {
		return
	}
	printLineups(b.out, view, view.Items, false)
}
