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


// Package ai provides abstractions for the AI collaborators used in
// Librosearch.
//
// This package defines interfaces for the three model-backed operations the
// search engine depends on: text embeddings, query intent classification,
// and response narration. The engine depends on these abstractions rather
// than on concrete implementations.
//
// # Design Principles
//
// The package is designed around four interfaces:
//
//   - Embedder: generates vector embeddings from query text
//   - Classifier: turns a free-text (and optionally image) query into a
//     raw tagged classification
//   - Narrator: produces the natural-language reply from a prepared
//     prompt context
//   - Provider: aggregates the three services for convenient
//     initialization and lifecycle management
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Classification is advisory, not authoritative: the Classifier surfaces
// transport and parse failures as errors, and the search engine degrades
// any such failure to a thematic search over the raw query text. Nothing
// in this package makes a failed classification fatal.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434/v1"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	result, err := provider.Classifier().Classify(ctx, "tutti i libri di Bruce Nauman", nil, nil)
package ai
