package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/news"
)

var (
	newsPage    int
	newsSize    int
	newsVerbose bool
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "List news articles",
	RunE:  runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)

	newsCmd.Flags().IntVar(&newsPage, "page", 1, "page number")
	newsCmd.Flags().IntVar(&newsSize, "size", 0, "page size (default from config)")
	newsCmd.Flags().BoolVarP(&newsVerbose, "verbose", "v", false, "show article content")
}

func runNews(cmd *cobra.Command, args []string) error {
	size := newsSize
	if size <= 0 {
		size = cfg.Lineups.PageSize
	}

	h := news.New(apiClient, news.NewFilters(newsPage, size), hookOptions()...)
	defer h.Close()

	h.Start(cmd.Context())
	h.Wait()

	if err := h.Err(); err != nil {
		return fmt.Errorf("failed to fetch news: %w", err)
	}

	view, _ := h.View()
	printNews(cmd.OutOrStdout(), view, newsVerbose)
	return nil
}
