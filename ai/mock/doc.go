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


// Package mock provides test doubles for the ai interfaces.
//
// The mocks default to deterministic behavior (hash-derived embeddings, a
// thematic classification echoing the query, a canned narration) and allow
// behavior injection through public function fields:
//
//	classifier := mock.NewMockClassifier()
//	classifier.ClassifyFunc = func(ctx context.Context, query string, image []byte, prior *ai.PriorContext) (*ai.Classification, error) {
//	    return &ai.Classification{Tipo: ai.TipoNome, Nome: "Bruce Nauman"}, nil
//	}
//
// Constructors return concrete types so tests can reach the function
// fields and call counters directly.
package mock
