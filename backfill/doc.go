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


// Package backfill populates the derived columns the search engine
// depends on: embedding vectors for semantic retrieval and perceptual
// hashes of cover images for the image match engine.
//
// The catalog is maintained by an external ingestion process that knows
// nothing about either column, so backfill runs as a batch command:
// scan for books missing a value, recompute it, write it back. Batches
// keep the embedding API calls bounded; a worker pool parallelizes the
// cover downloads; failed API calls retry with exponential backoff.
// Interrupted runs resume where they stopped because scanning always
// starts from the oldest unprocessed id.
package backfill
