package mockapi

import (
	"fmt"

	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/news"
	"github.com/fanzhongxing/jcc-web/seasons"
)

// DefaultFixtures returns a small data set spread over two versions
func DefaultFixtures() Fixtures {
	names := []string{"Vanguard Rush", "Arcane Burst", "Iron Wall", "Shadow Flank", "Star Guardians", "Void Reroll"}
	ratings := []string{"S", "A", "B"}
	difficulties := []string{"easy", "medium", "hard"}

	var ls []lineups.Lineup
	id := int64(1)
	for _, version := range []string{"S15", "S14"} {
		for i, name := range names {
			ls = append(ls, lineups.Lineup{
				ID:             id,
				Name:           name,
				FormationImage: fmt.Sprintf("/images/formation/%d.png", id),
				Rating:         ratings[i%len(ratings)],
				Difficulty:     difficulties[i%len(difficulties)],
				Version:        version,
				Code:           fmt.Sprintf("%s-%03d", version, id),
				Stats: &lineups.Stats{
					Pick: fmt.Sprintf("%.1f%%", 4.0+float64(i)),
					Top4: fmt.Sprintf("%.1f%%", 45.0+float64(i*3)),
					Win:  fmt.Sprintf("%.1f%%", 10.0+float64(i*2)),
					Avg:  fmt.Sprintf("%.2f", 4.8-float64(i)*0.2),
				},
			})
			id++
		}
	}

	var items []news.Item
	for i := 1; i <= 12; i++ {
		items = append(items, news.Item{
			ID:      int64(i),
			Title:   fmt.Sprintf("Patch notes %d", i),
			Time:    fmt.Sprintf("2025-05-%02d", i),
			Content: fmt.Sprintf("Balance changes for patch %d.", i),
		})
	}

	return Fixtures{
		Lineups: ls,
		News:    items,
		Seasons: []seasons.Season{
			{ID: 3, Name: "", Introduce: "upcoming", Sort: 3},
			{ID: 2, Name: "S15", Introduce: "current season", Sort: 2, Status: 1},
			{ID: 1, Name: "S14", Introduce: "previous season", Sort: 1},
		},
	}
}
