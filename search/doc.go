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


// Package search implements the conversational retrieval engine over the
// art-book catalog.
//
// A request is classified into one of three intents (person name, exact
// title, theme), dispatched to the matching retrieval strategy, and the
// results are narrated back with citation links:
//   - name searches run five classified relevance tiers against the
//     artist and author relations, with optional language/year/type
//     narrowing and facet computation;
//   - theme searches embed the query and rank by vector similarity;
//   - image searches hash the uploaded cover and merge Hamming-distance
//     candidates with substring-matched ones.
//
// Classification is advisory: any classifier failure degrades to a
// thematic search of the raw query instead of failing the request.
package search
