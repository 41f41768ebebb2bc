// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateName validates a name passed to a name search.
//
// Validation rules:
//   - must not be empty after trimming whitespace
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateFilterSet validates a FilterSet according to domain rules.
//
// Validation rules:
//   - when both year bounds are set, YearMin must not exceed YearMax
//   - a non-empty Type must be one of the canonical publication types
//
// NOT validated:
//   - Language (matched as a free-text substring, any value works)
func ValidateFilterSet(f FilterSet) error {
	if f.YearMin != 0 && f.YearMax != 0 && f.YearMin > f.YearMax {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, ErrInvalidYearRange)
	}
	if f.Type != "" {
		if _, ok := NormalizePublicationType(string(f.Type)); !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidFilter, ErrUnknownPublicationType, f.Type)
		}
	}
	return nil
}
