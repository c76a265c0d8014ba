package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/filter"
	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/seasons"
)

var (
	lineupVersion string
	lineupPage    int
	lineupSize    int
	lineupName    string
	lineupWhere   string
	lineupPreset  string
	lineupVerbose bool
)

var lineupsCmd = &cobra.Command{
	Use:   "lineups",
	Short: "List lineups for a game version",
	Long: `List one page of lineups. The version defaults to the configured
default, or the latest active season reported by the backend.

The --where and --preset flags narrow the fetched page locally using
filter expressions, e.g.:
  --where 'item.Rating == "S" and percent(item.Stats.Win) > 15'
  --where 'icontains(item.Name, "burst")'`,
	RunE: runLineups,
}

func init() {
	rootCmd.AddCommand(lineupsCmd)

	lineupsCmd.Flags().StringVar(&lineupVersion, "version", "", "game version (default: latest active season)")
	lineupsCmd.Flags().IntVar(&lineupPage, "page", 1, "page number")
	lineupsCmd.Flags().IntVar(&lineupSize, "size", 0, "page size (default from config)")
	lineupsCmd.Flags().StringVar(&lineupName, "name", "", "filter by lineup name on the backend")
	lineupsCmd.Flags().StringVar(&lineupWhere, "where", "", "local filter expression")
	lineupsCmd.Flags().StringVar(&lineupPreset, "preset", "", "named filter preset from config")
	lineupsCmd.Flags().BoolVarP(&lineupVerbose, "verbose", "v", false, "show codes and images")
}

func runLineups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := filters.Resolve(lineupWhere, lineupPreset)
	if err != nil {
		return err
	}

	version := resolveVersion(ctx, lineupVersion)
	size := lineupSize
	if size <= 0 {
		size = cfg.Lineups.PageSize
	}

	in := lineups.NewFilters(version, lineupPage, size, lineupName)
	h := lineups.New(apiClient, in, hookOptions()...)
	defer h.Close()

	h.Start(ctx)
	h.Wait()

	if err := h.Err(); err != nil {
		return fmt.Errorf("failed to fetch lineups: %w", err)
	}

	view, _ := h.View()
	items, err := filter.Apply(f, view.Items)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("version", version).
		Int("fetched", len(view.Items)).
		Int("matched", len(items)).
		Msg("Lineups loaded")

	fmt.Fprintf(cmd.OutOrStdout(), "Version %s", version)
	if f != nil {
		fmt.Fprintf(cmd.OutOrStdout(), ", filter: %s", f.Expression())
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printLineups(cmd.OutOrStdout(), view, items, lineupVerbose)
	return nil
}

// resolveVersion picks the lineup version: the flag, then config, then the
// latest active season from the backend.
func resolveVersion(ctx context.Context, flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v := strings.TrimSpace(cfg.Lineups.DefaultVersion); v != "" {
		return v
	}

	h := seasons.New(apiClient, logger)
	h.Load(ctx)
	if err := h.Err(); err != nil {
		logger.Warn().Err(err).Str("fallback", seasons.DefaultSeason).Msg("Could not determine active season")
	}
	return h.LatestActive()
}
