package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librosearch/core"
)

func TestWhereBuilderEmpty(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.clause())
	assert.Empty(t, w.args)
}

func TestWhereBuilderBindSequence(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "$1", w.bind("a"))
	assert.Equal(t, "$2", w.bind(7))
	assert.Equal(t, []any{"a", 7}, w.args)
}

func TestWhereBuilderPatternMatch(t *testing.T) {
	var w whereBuilder
	p := core.NamePatterns("Bruce Nauman")
	w.addPatternMatch("LOWER(b.titolo)", p)

	require.Len(t, w.conds, 1)
	assert.Equal(t, "(LOWER(b.titolo) LIKE $1 OR LOWER(b.titolo) LIKE $2)", w.conds[0])
	assert.Equal(t, []any{"%bruce nauman%", "%nauman bruce%"}, w.args)
}

func TestWhereBuilderPatternExclude(t *testing.T) {
	var w whereBuilder
	p := core.NamePatterns("Luigi Ghirri")
	w.addPatternExclude("LOWER(b.titolo)", p)

	require.Len(t, w.conds, 1)
	assert.Equal(t, "LOWER(b.titolo) NOT LIKE $1 AND LOWER(b.titolo) NOT LIKE $2", w.conds[0])
}

func TestWhereBuilderFilters(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		var w whereBuilder
		w.addFilters(core.FilterSet{Language: "IT", YearMin: 1990, YearMax: 2000})

		require.Len(t, w.conds, 3)
		assert.Equal(t, "LOWER(b.lingua) LIKE $1", w.conds[0])
		assert.Equal(t, "b.anno >= $2", w.conds[1])
		assert.Equal(t, "b.anno <= $3", w.conds[2])
		assert.Equal(t, []any{"%it%", 1990, 2000}, w.args)
	})

	t.Run("zero filters add nothing", func(t *testing.T) {
		var w whereBuilder
		w.addFilters(core.FilterSet{})
		assert.Empty(t, w.conds)
	})
}

func TestWhereBuilderClauseJoinsWithAnd(t *testing.T) {
	var w whereBuilder
	w.add("a = 1")
	w.add("b = 2")
	assert.Equal(t, "WHERE a = 1\n  AND b = 2", w.clause())
}
