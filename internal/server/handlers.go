package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/bython/pkg/ast"
	"github.com/leapstack-labs/bython/pkg/parser"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// TranspileRequest is the body of the transpile and ast endpoints.
type TranspileRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
}

// TranspileResponse is a successful transpile.
type TranspileResponse struct {
	Output string `json:"output"`
}

// ASTResponse is a successful parse.
type ASTResponse struct {
	AST any `json:"ast"`
}

// ErrorResponse wraps a failure.
type ErrorResponse struct {
	Error *transpile.Diagnostic `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleTranspile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	out, err := transpile.File(req.Filename, req.Source)
	if err != nil {
		s.writeDiagnostic(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, TranspileResponse{Output: out})
}

func (s *Server) handleAST(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	prog, err := parser.ParseFile(req.Filename, req.Source)
	if err != nil {
		s.writeDiagnostic(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ASTResponse{AST: ast.Dump(prog)})
}

// handleEvents streams build events as server-sent events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	_, _ = fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			ev, ok := s.notifier.Latest()
			if !ok {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("failed to encode build event", "error", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: build\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*TranspileRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req TranspileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, status, ErrorResponse{Error: &transpile.Diagnostic{
			Kind:    "request",
			Message: fmt.Sprintf("invalid request body: %v", err),
		}})
		return nil, false
	}
	return &req, true
}

// writeDiagnostic maps source errors to 422 and everything else to 500.
func (s *Server) writeDiagnostic(w http.ResponseWriter, err error) {
	diag := transpile.Diagnose(err)
	status := http.StatusUnprocessableEntity
	if diag.Kind == transpile.KindInternal {
		status = http.StatusInternalServerError
		s.logger.Error("transpile failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: diag})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
