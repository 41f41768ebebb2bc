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


package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/search"
)

// Handler serves the search API endpoints.
type Handler struct {
	searcher *search.Searcher
	logger   *slog.Logger
}

// Healthcheck answers deployment probes.
func (h *Handler) Healthcheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "librosearch",
	})
}

// Banner answers a GET without running a search, so the frontend can
// probe that the API is alive. A GET with a q parameter runs the search
// directly.
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "LibroSearch API attiva. Usa POST /api/search per interrogare il catalogo.",
		})
		return
	}

	req := &search.Request{
		Query:     query,
		SessionID: r.URL.Query().Get("session_id"),
	}
	h.respond(w, r, req)
}

// Search runs one conversational turn.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Reject before the engine touches any collaborator.
	if strings.TrimSpace(req.Query) == "" && len(req.Image) == 0 {
		writeError(w, http.StatusBadRequest, "query text or image required")
		return
	}

	h.respond(w, r, &req)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, req *search.Request) {
	resp, err := h.searcher.Search(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("search failed", "query", req.Query, "err", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// isClientError separates caller mistakes from backend failures.
func isClientError(err error) bool {
	return errors.Is(err, search.ErrMissingInput) ||
		errors.Is(err, search.ErrUnknownMode) ||
		errors.Is(err, search.ErrNoBookIDs) ||
		errors.Is(err, search.ErrNoPreviousResults) ||
		errors.Is(err, core.ErrEmptyName) ||
		errors.Is(err, core.ErrEmptyQuery) ||
		errors.Is(err, core.ErrInvalidFilter) ||
		errors.Is(err, core.ErrInvalidYearRange) ||
		errors.Is(err, core.ErrUnknownPublicationType)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"errore": message})
}
