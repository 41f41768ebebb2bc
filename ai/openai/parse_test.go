package openai

import (
	"testing"

	"github.com/poiesic/librosearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		result, err := parseClassification(`{"tipo": "nome", "nome": "Bruce Nauman"}`)
		require.NoError(t, err)
		assert.Equal(t, ai.TipoNome, result.Tipo)
		assert.Equal(t, "Bruce Nauman", result.Nome)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		result, err := parseClassification("```json\n{\"tipo\": \"tematica\", \"tema\": \"arte concettuale\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, ai.TipoTematica, result.Tipo)
		assert.Equal(t, "arte concettuale", result.Tema)
	})

	t.Run("followup with filters", func(t *testing.T) {
		result, err := parseClassification(`{"tipo": "seguito", "lingua": "EN", "anno_min": 1990}`)
		require.NoError(t, err)
		assert.Equal(t, ai.TipoSeguito, result.Tipo)
		assert.Equal(t, "EN", result.Lingua)
		assert.Equal(t, 1990, result.AnnoMin)
	})

	t.Run("repairs missing key quote", func(t *testing.T) {
		result, err := parseClassification(`{tipo": "nome", nome": "Luigi Ghirri"}`)
		require.NoError(t, err)
		assert.Equal(t, ai.TipoNome, result.Tipo)
		assert.Equal(t, "Luigi Ghirri", result.Nome)
	})

	t.Run("missing discriminator is an error", func(t *testing.T) {
		_, err := parseClassification(`{"nome": "Luigi Ghirri"}`)
		assert.Error(t, err)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := parseClassification("Certamente! Ecco la classificazione:")
		assert.Error(t, err)
	})
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"tipo": "nome"}`, `{"tipo": "nome"}`},
		{`{tipo": "nome"}`, `{"tipo": "nome"}`},
		{`{"tipo": "nome", lingua": "EN"}`, `{"tipo": "nome", "lingua": "EN"}`},
		{`{}`, `{}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, repairJSON(tt.in), "in=%q", tt.in)
	}
}
