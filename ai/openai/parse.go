package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/librosearch/ai"
)

// parseClassification decodes a classifier response, tolerating markdown
// code fences and the key-quoting defects small models produce.
// A decoded object without a tipo discriminator is an error: the caller
// needs the tag to dispatch and must fall back rather than guess.
func parseClassification(raw string) (*ai.Classification, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = repairJSON(text)

	var result ai.Classification
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, err
	}
	if result.Tipo == "" {
		return nil, fmt.Errorf("classification missing tipo discriminator")
	}
	return &result, nil
}

// repairJSON fixes the most common JSON defect in small-model output:
// a missing opening quote before an object key, e.g. `{tipo": "nome"}`.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	i := 0
	for i < len(in) {
		ch := in[i]
		out = append(out, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		// Skip whitespace after { or ,
		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out = append(out, in[i])
			i++
		}

		// A bare identifier followed by ": is an unquoted key.
		if i >= len(in) || in[i] == '"' || !isKeyRune(in[i]) {
			continue
		}
		start := i
		for i < len(in) && isKeyRune(in[i]) {
			i++
		}
		if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
			out = append(out, '"')
			out = append(out, in[start:i]...)
		} else {
			out = append(out, in[start:i]...)
		}
	}

	return string(out)
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
