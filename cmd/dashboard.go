package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/news"
	"github.com/fanzhongxing/jcc-web/resource"
	"github.com/fanzhongxing/jcc-web/seasons"
)

var dashboardVersion string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the first page of lineups, news and seasons",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardVersion, "version", "", "game version (default: latest known version)")
}

// dashboard holds the outcome of each section. A failed section keeps its
// error and does not fail the others.
type dashboard struct {
	Version string

	Lineups    resource.ListViewModel[lineups.Lineup]
	LineupsErr error

	News    resource.ListViewModel[news.Item]
	NewsErr error

	Seasons      []seasons.Season
	LatestSeason string
	SeasonsErr   error
}

func loadDashboard(ctx context.Context, client apiclient.Doer, log zerolog.Logger, version string, size int, opts ...resource.Option) dashboard {
	d := dashboard{Version: version}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	g.Go(func() error {
		h := lineups.New(client, lineups.NewFilters(version, 1, size, ""), opts...)
		defer h.Close()
		h.Start(ctx)
		h.Wait()
		d.Lineups, _ = h.View()
		d.LineupsErr = h.Err()
		return nil
	})

	g.Go(func() error {
		h := news.New(client, news.NewFilters(1, size), opts...)
		defer h.Close()
		h.Start(ctx)
		h.Wait()
		d.News, _ = h.View()
		d.NewsErr = h.Err()
		return nil
	})

	g.Go(func() error {
		h := seasons.New(client, log)
		h.Load(ctx)
		d.Seasons = h.Items()
		d.LatestSeason = h.LatestActive()
		d.SeasonsErr = h.Err()
		return nil
	})

	// Sections never return errors; each one records its own
	_ = g.Wait()
	return d
}

func (d dashboard) failed() bool {
	return d.LineupsErr != nil && d.NewsErr != nil && d.SeasonsErr != nil
}

func (d dashboard) print(w io.Writer) {
	fmt.Fprintf(w, "== Lineups (%s) ==\n", d.Version)
	if d.LineupsErr != nil {
		fmt.Fprintf(w, "error: %v\n", d.LineupsErr)
	} else {
		printLineups(w, d.Lineups, d.Lineups.Items, false)
	}

	fmt.Fprintf(w, "\n== News ==\n")
	if d.NewsErr != nil {
		fmt.Fprintf(w, "error: %v\n", d.NewsErr)
	} else {
		printNews(w, d.News, false)
	}

	fmt.Fprintf(w, "\n== Seasons ==\n")
	if d.SeasonsErr != nil {
		fmt.Fprintf(w, "error: %v\n", d.SeasonsErr)
	} else {
		printSeasons(w, d.Seasons, d.LatestSeason)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	version := strings.TrimSpace(dashboardVersion)
	if version == "" {
		version = strings.TrimSpace(cfg.Lineups.DefaultVersion)
	}
	if version == "" {
		version = seasons.LatestVersion().Code
	}

	d := loadDashboard(cmd.Context(), apiClient, logger, version, cfg.Lineups.PageSize, hookOptions()...)
	d.print(cmd.OutOrStdout())

	if d.failed() {
		return fmt.Errorf("all dashboard sections failed: %w", d.LineupsErr)
	}
	return nil
}
