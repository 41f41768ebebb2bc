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


package search

import "errors"

var (
	// ErrBookRepositoryRequired is returned when a book repository is not provided.
	ErrBookRepositoryRequired = errors.New("book repository required")

	// ErrSessionStoreRequired is returned when a session store is not provided.
	ErrSessionStoreRequired = errors.New("session store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrMissingInput is returned when a request carries neither query
	// text nor an image. Rejected before any collaborator call.
	ErrMissingInput = errors.New("query text or image required")

	// ErrUnknownMode is returned for an unrecognized direct search mode.
	ErrUnknownMode = errors.New("unknown search mode")

	// ErrNoBookIDs is returned when comment mode is requested without
	// book ids.
	ErrNoBookIDs = errors.New("comment mode requires book ids")

	// ErrNoPreviousResults is returned when refine mode finds no stored
	// results for the session.
	ErrNoPreviousResults = errors.New("no previous results to refine")
)
