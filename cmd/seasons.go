package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/seasons"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons and known game versions",
	RunE:  runSeasons,
}

func init() {
	rootCmd.AddCommand(seasonsCmd)
}

func runSeasons(cmd *cobra.Command, args []string) error {
	h := seasons.New(apiClient, logger)
	h.Load(cmd.Context())
	if err := h.Err(); err != nil {
		return fmt.Errorf("failed to fetch seasons: %w", err)
	}

	printSeasons(cmd.OutOrStdout(), h.Items(), h.LatestActive())
	printVersions(cmd.OutOrStdout(), seasons.Versions())
	return nil
}
