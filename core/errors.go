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

import "errors"

// Domain validation errors
var (
	// ErrEmptyQuery indicates a request carrying neither query text nor an image.
	ErrEmptyQuery = errors.New("query text or image required")

	// ErrEmptyName indicates an empty name passed to a name search.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidFilter indicates a FilterSet that failed validation.
	ErrInvalidFilter = errors.New("invalid filter set")

	// ErrInvalidYearRange indicates YearMin greater than YearMax.
	ErrInvalidYearRange = errors.New("year lower bound exceeds upper bound")

	// ErrUnknownPublicationType indicates an unrecognized publication type value.
	ErrUnknownPublicationType = errors.New("unknown publication type")
)
