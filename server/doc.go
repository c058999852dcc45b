// Package server exposes the ingestion pipeline over a small HTTP API:
// submit a paper, poll its status, and check liveness.
package server
