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


// Package storage defines the repository abstraction over the book
// catalog's relational store.
//
// The interface exposes the classified queries the search engine needs
// (the five relevance tiers, a title lookup, semantic nearest-neighbour,
// hash-scoped image candidates) rather than a generic query surface, so
// the engine stays independent of SQL. The production implementation
// lives in storage/postgres.
//
// Storage failures are fatal for the request that triggered them: this is
// a read path, and retrying a failed read silently risks returning
// partial tiers.
package storage
