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


// Package session persists per-conversation context between search
// turns. A followup query ("only the English ones") is resolved against
// the previous turn's subject and filters, so the searcher needs the
// prior turn back even when requests land on different processes.
//
// Three drivers are provided: an in-memory map for tests and single
// process deployments, Redis for shared deployments, and BadgerDB for
// single-node deployments that must survive restarts. All drivers store
// the same JSON encoding of Context, so the driver can change without a
// migration.
package session
