package core

import "strings"

// Patterns holds the two case-insensitive substring patterns derived from
// a person name: the name as given and the name with its tokens reversed,
// to catch "Lastname Firstname" storage conventions.
type Patterns struct {
	Forward  string
	Reversed string
}

// NamePatterns normalizes a name into LIKE patterns. Both patterns are
// identical when the name has fewer than two tokens.
func NamePatterns(name string) Patterns {
	lower := strings.ToLower(strings.TrimSpace(name))
	forward := "%" + lower + "%"

	parts := strings.Fields(lower)
	if len(parts) < 2 {
		return Patterns{Forward: forward, Reversed: forward}
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return Patterns{
		Forward:  forward,
		Reversed: "%" + strings.Join(parts, " ") + "%",
	}
}
