// Copyright 2026 Constellar Labs
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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/ingestion"
	"github.com/constellar/paperflow/storage"
)

// Ingestor is the pipeline surface the server exposes.
type Ingestor interface {
	Submit(ctx context.Context, req ingestion.Request) (ingestion.Result, error)
	Status(ctx context.Context, urlOrID string) (*core.PaperRecord, error)
}

// Server serves the ingestion HTTP API.
type Server struct {
	pipeline Ingestor
	logger   *slog.Logger

	httpServer *http.Server
	listener   net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server around the pipeline.
func NewServer(pipeline Ingestor, opts ...Option) *Server {
	s := &Server{
		pipeline: pipeline,
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the route table, usable directly in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ingest", s.handleIngest)
	// Old-style arXiv identifiers contain a slash, so the id segment must
	// match the rest of the path.
	mux.HandleFunc("GET /status/{id...}", s.handleStatus)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// Start binds addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("listening", "addr", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address once Start has been called.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

type ingestRequest struct {
	ArxivID      string `json:"arxiv_id"`
	PaperURL     string `json:"paper_url"`
	Title        string `json:"title"`
	CollectionID string `json:"collection_id"`
}

type ingestResponse struct {
	Outcome core.Outcome `json:"outcome"`
	ArxivID string       `json:"arxiv_id,omitempty"`
}

type statusResponse struct {
	ArxivID      string      `json:"arxiv_id"`
	PaperURL     string      `json:"paper_url,omitempty"`
	Title        string      `json:"title,omitempty"`
	Status       core.Status `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	WordCount    int         `json:"word_count,omitempty"`
	PageCount    int         `json:"page_count,omitempty"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ArxivID == "" && req.PaperURL == "" {
		writeError(w, http.StatusBadRequest, "arxiv_id or paper_url is required")
		return
	}

	result, err := s.pipeline.Submit(r.Context(), ingestion.Request{
		ArxivID:      req.ArxivID,
		PaperURL:     req.PaperURL,
		Title:        req.Title,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		s.logger.Error("submission failed", "err", err)
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	status := http.StatusAccepted
	if result.Outcome == core.OutcomeSkipped {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ingestResponse{Outcome: result.Outcome, ArxivID: result.ArxivID})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	record, err := s.pipeline.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "paper not found")
			return
		}
		s.logger.Error("status lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "status lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		ArxivID:      record.ArxivID,
		PaperURL:     record.PaperURL,
		Title:        record.Title,
		Status:       record.Status,
		ErrorMessage: record.ErrorMessage,
		WordCount:    record.WordCount,
		PageCount:    record.PageCount,
		UpdatedAt:    record.UpdatedAt,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
