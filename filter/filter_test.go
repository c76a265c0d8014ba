package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Win string
}

type lineup struct {
	Name   string
	Rating string
	Stats  *stats
}

var sample = []lineup{
	{Name: "Iron Wall", Rating: "S", Stats: &stats{Win: "18.5%"}},
	{Name: "Arcane Burst", Rating: "A", Stats: &stats{Win: "22.0%"}},
	{Name: "Void Reroll", Rating: "S", Stats: &stats{Win: "9.1%"}},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `item.Rating == "S"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `icontains(item.Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "helpers",
			expression: `istartsWith(item.Name, "iron") or percent(item.Stats.Win) > 20`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewCompiler().Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`item.Rating == "S"`, []string{"Iron Wall", "Void Reroll"}},
		{`icontains(item.Name, "BURST")`, []string{"Arcane Burst"}},
		{`item.Name contains "Burst"`, []string{"Arcane Burst"}},
		{`lower(item.Name) startsWith "iron"`, []string{"Iron Wall"}},
		{`percent(item.Stats.Win) > 15`, []string{"Iron Wall", "Arcane Burst"}},
		{`item.Rating == "S" and percent(item.Stats.Win) > 15`, []string{"Iron Wall"}},
		{`iendsWith(item.Name, "WALL")`, []string{"Iron Wall"}},
		{`iendsWith(item.Name, "z")`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := Apply(f, sample)
			require.NoError(t, err)

			names := make([]string, 0, len(matched))
			for _, l := range matched {
				names = append(names, l.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestApplyNilFilter(t *testing.T) {
	matched, err := Apply[lineup](nil, sample)
	require.NoError(t, err)
	assert.Len(t, matched, len(sample))
}

func TestEvaluationError(t *testing.T) {
	f, err := Compile(`percent(item.Stats.Win) > 1`)
	require.NoError(t, err)

	_, err = Apply(f, []lineup{{Name: "no stats"}})
	require.Error(t, err)

	var evalErr *EvaluationError
	assert.True(t, errors.As(err, &evalErr))
	assert.Contains(t, err.Error(), "item 0")
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler(WithCache(2))

	first, err := c.Compile(`item.Rating == "S"`)
	require.NoError(t, err)
	second, err := c.Compile(` item.Rating == "S" `)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.cache.Len())
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 12.5, percent("12.5%"), 0.0001)
	assert.InDelta(t, 4.2, percent(" 4.20 "), 0.0001)
	assert.Equal(t, 0.0, percent("n/a"))
}

func TestManager(t *testing.T) {
	m := NewManager(WithCompiler(NewCompiler()))

	err := m.RegisterFilters(map[string]string{
		"strong": `item.Rating == "S"`,
		"winner": `percent(item.Stats.Win) > 20`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"strong", "winner"}, m.ListFilters())

	err = m.RegisterFilters(map[string]string{"broken": `item.Rating ==`})
	require.Error(t, err)
	assert.Len(t, m.ListFilters(), 2, "failed batch registers nothing")

	f, err := m.Resolve("", "strong")
	require.NoError(t, err)
	assert.Equal(t, `item.Rating == "S"`, f.Expression())

	f, err = m.Resolve(`item.Rating == "A"`, "strong")
	require.NoError(t, err)
	assert.Equal(t, `item.Rating == "A"`, f.Expression())

	f, err = m.Resolve("", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = m.Resolve("", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset 'missing' not found")
}
