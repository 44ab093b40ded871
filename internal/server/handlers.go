package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/tango/pkg/tango/internalerr"
)

// maxUploadBytes bounds the request body size for uploads.
const maxUploadBytes = 64 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploadEPUB accepts an EPUB as multipart field "file", runs the
// extraction pipeline and returns the ranked vocabulary.
func (s *Server) handleUploadEPUB(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, fmt.Errorf("%w: bad limit %q", internalerr.ErrInvalidInput, q))
			return
		}
		limit = n
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: missing file field", internalerr.ErrInvalidInput))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".epub") {
		s.writeError(w, fmt.Errorf("%w: %q is not an epub", internalerr.ErrInvalidInput, header.Filename))
		return
	}

	// The zip reader needs random access, so the upload goes through a
	// temp file.
	tmp, err := os.CreateTemp("", "tango-upload-*.epub")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		s.writeError(w, err)
		return
	}

	entries, err := s.engine.AnalyzeBook(r.Context(), tmp.Name(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vocabulary": entries,
		"count":      len(entries),
	})
}

// handleUploadAnki accepts a tab-separated Anki export as multipart
// field "file" and merges its words into the known set.
func (s *Server) handleUploadAnki(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: missing file field", internalerr.ErrInvalidInput))
		return
	}
	defer file.Close()

	n, err := s.engine.ImportAnkiExport(r.Context(), file)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}

func (s *Server) handleKnownWords(w http.ResponseWriter, r *http.Request) {
	words, err := s.engine.KnownWords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"words": words,
		"count": len(words),
	})
}

type updateKnownRequest struct {
	Words  []string `json:"words"`
	Action string   `json:"action"`
}

func (s *Server) handleUpdateKnown(w http.ResponseWriter, r *http.Request) {
	var req updateKnownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json body", internalerr.ErrInvalidInput))
		return
	}
	if err := s.engine.UpdateKnownWords(r.Context(), req.Words, req.Action); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetKnown(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ResetKnownWords(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerateAnki(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.engine.BuildDeck(r.Context(), "Book Vocabulary")
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeck(w, "vocabulary.apkg", pkg)
}

func (s *Server) handleGenerateAnkiKnown(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.engine.BuildKnownWordsDeck(r.Context(), "Known Words")
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeck(w, "known-words.apkg", pkg)
}

func writeDeck(w http.ResponseWriter, filename string, pkg []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pkg)))
	w.WriteHeader(http.StatusOK)
	w.Write(pkg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors to HTTP statuses. Invalid input and
// missing data are client errors, everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput), errors.Is(err, internalerr.ErrNotFound):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
