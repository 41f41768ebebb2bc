package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librosearch/core"
)

func tierSet() *core.ResultSet {
	return &core.ResultSet{
		MonographsTitled: rank([]core.Book{book(1, "a")}, 1, core.BucketMonographTitled),
		Monographs:       rank([]core.Book{book(2, "b")}, 2, core.BucketMonograph),
		Collectives:      rank([]core.Book{book(3, "c")}, 3, core.BucketCollective),
		AsAuthor:         rank([]core.Book{book(4, "d")}, 4, core.BucketAuthor),
		Mentions:         rank([]core.Book{book(5, "e")}, 5, core.BucketMention),
	}
}

func TestApplyTypeFilterMonograph(t *testing.T) {
	set := tierSet()
	applyTypeFilter(set, core.PubMonograph)

	assert.Len(t, set.MonographsTitled, 1)
	assert.Len(t, set.Monographs, 1)
	assert.Empty(t, set.Collectives)
	assert.Empty(t, set.AsAuthor)
	assert.Empty(t, set.Mentions)
	assert.Equal(t, 2, set.Total())
}

func TestApplyTypeFilterCollective(t *testing.T) {
	set := tierSet()
	applyTypeFilter(set, core.PubCollective)

	assert.Empty(t, set.MonographsTitled)
	assert.Empty(t, set.Monographs)
	assert.Len(t, set.Collectives, 1)
	assert.Empty(t, set.AsAuthor)
	assert.Empty(t, set.Mentions)
}

func TestApplyTypeFilterAuthor(t *testing.T) {
	set := tierSet()
	applyTypeFilter(set, core.PubAuthor)

	assert.Empty(t, set.Collectives)
	assert.Len(t, set.AsAuthor, 1)
	assert.Empty(t, set.Mentions)
}

func TestApplyTypeFilterNoneKeepsEverything(t *testing.T) {
	set := tierSet()
	applyTypeFilter(set, "")
	assert.Equal(t, 5, set.Total())
}

func TestFoldLanguage(t *testing.T) {
	cases := map[string]string{
		"it":       "IT",
		"Italiano": "IT",
		"ENG":      "EN",
		"inglese":  "EN",
		"Tedesco":  "DE",
		"fra":      "FR",
		"Giapponese": "Giapponese", // unrecognized stays as-is
	}
	for raw, want := range cases {
		assert.Equal(t, want, foldLanguage(raw), "input %q", raw)
	}
}

func TestComputeFacets(t *testing.T) {
	mk := func(id core.BookID, lang, year string) core.Book {
		b := book(id, "t")
		b.Language = lang
		b.Year = year
		return b
	}

	set := &core.ResultSet{
		Monographs: rank([]core.Book{
			mk(1, "Italiano", "1994"),
			mk(2, "it", "c. 1972"),
			mk(3, "English", "2003"),
			mk(4, "", "s.d."),
		}, 2, core.BucketMonograph),
	}

	facets := computeFacets(set)

	require.Len(t, facets.Languages, 2)
	assert.Equal(t, core.LanguageCount{Code: "IT", Count: 2}, facets.Languages[0])
	assert.Equal(t, core.LanguageCount{Code: "EN", Count: 1}, facets.Languages[1])

	require.NotNil(t, facets.YearMin)
	require.NotNil(t, facets.YearMax)
	assert.Equal(t, 1972, *facets.YearMin)
	assert.Equal(t, 2003, *facets.YearMax)
}

func TestComputeFacetsEmptySet(t *testing.T) {
	facets := computeFacets(&core.ResultSet{})

	assert.Empty(t, facets.Languages)
	assert.Nil(t, facets.YearMin)
	assert.Nil(t, facets.YearMax)
}

func TestComputeFacetsNoParseableYears(t *testing.T) {
	b := book(1, "t")
	b.Year = "s.d."
	facets := computeFacets(&core.ResultSet{
		Mentions: rank([]core.Book{b}, 5, core.BucketMention),
	})

	assert.Nil(t, facets.YearMin)
	assert.Nil(t, facets.YearMax)
}
