// Package server exposes the search engine over HTTP.
//
// The surface is deliberately small: POST /api/search runs one
// conversational turn, GET /api/search answers a status banner so the
// frontend can probe the API, and GET /healthcheck serves deployment
// probes. Malformed input is rejected before the engine touches any
// collaborator.
package server
