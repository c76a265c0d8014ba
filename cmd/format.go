package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/news"
	"github.com/fanzhongxing/jcc-web/resource"
	"github.com/fanzhongxing/jcc-web/seasons"
)

const ruleWidth = 80

func printRule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func printPageFooter[T any](w io.Writer, view resource.ListViewModel[T]) {
	fmt.Fprintf(w, "Page %d/%d (%d total)", view.Page, view.TotalPages, view.Total)
	var hints []string
	if view.HasPrevious() {
		hints = append(hints, "prev")
	}
	if view.HasNext() {
		hints = append(hints, "next")
	}
	if len(hints) > 0 {
		fmt.Fprintf(w, " [%s]", strings.Join(hints, "|"))
	}
	fmt.Fprintln(w)
}

// printLineups writes the lineups of a page. items may be a locally
// filtered subset of view.Items.
func printLineups(w io.Writer, view resource.ListViewModel[lineups.Lineup], items []lineups.Lineup, verbose bool) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No lineups found.")
		printPageFooter(w, view)
		return
	}

	fmt.Fprintf(w, "\nFound %d lineups:\n", len(items))
	printRule(w)
	for _, l := range items {
		fmt.Fprintf(w, "• %s", l.Name)
		if l.Rating != "" {
			fmt.Fprintf(w, " [%s]", l.Rating)
		}
		if l.Difficulty != "" {
			fmt.Fprintf(w, " (%s)", l.Difficulty)
		}
		fmt.Fprintln(w)

		if l.Stats != nil {
			fmt.Fprintf(w, "  Pick: %s  Top4: %s  Win: %s  Avg: %s\n",
				orDash(l.Stats.Pick), orDash(l.Stats.Top4), orDash(l.Stats.Win), orDash(l.Stats.Avg))
		}
		if verbose {
			fmt.Fprintf(w, "  Version: %s\n", orDash(l.Version))
			if l.Code != "" {
				fmt.Fprintf(w, "  Code: %s\n", l.Code)
			}
			if l.FormationImage != "" {
				fmt.Fprintf(w, "  Image: %s\n", l.FormationImage)
			}
		}
	}
	printRule(w)
	printPageFooter(w, view)
}

func printNews(w io.Writer, view resource.ListViewModel[news.Item], verbose bool) {
	if len(view.Items) == 0 {
		fmt.Fprintln(w, "No news found.")
		printPageFooter(w, view)
		return
	}

	fmt.Fprintf(w, "\nNews:\n")
	printRule(w)
	for _, n := range view.Items {
		fmt.Fprintf(w, "• %s", n.Title)
		if n.Time != "" {
			fmt.Fprintf(w, " (%s)", n.Time)
		}
		fmt.Fprintln(w)
		if verbose && n.Content != "" {
			fmt.Fprintf(w, "  %s\n", truncate(n.Content, ruleWidth-2))
		}
	}
	printRule(w)
	printPageFooter(w, view)
}

func printSeasons(w io.Writer, items []seasons.Season, latest string) {
	fmt.Fprintf(w, "\nSeasons (latest active: %s):\n", latest)
	printRule(w)
	if len(items) == 0 {
		fmt.Fprintln(w, "No seasons found.")
	}
	for _, s := range items {
		fmt.Fprintf(w, "• %s (status %d)\n", orDash(s.Name), s.Status)
		if s.Introduce != "" {
			fmt.Fprintf(w, "  %s\n", truncate(s.Introduce, ruleWidth-2))
		}
	}
	printRule(w)
}

func printVersions(w io.Writer, versions []seasons.Version) {
	fmt.Fprintf(w, "\nVersions:\n")
	for _, v := range versions {
		fmt.Fprintf(w, "• %s  %s → %s\n", v.Label, v.Start.Format("2006-01-02"), v.End.Format("2006-01-02"))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
