package preview

import (
	"encoding/json"
	"net/http"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/internal/logging"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 64 << 10

// Response is the body of every render endpoint.
type Response struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := s.quote(r.Context(), req)
	respondRender(w, out, err)
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	var req LinksRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := s.links(r.Context(), req)
	respondRender(w, out, err)
}

// handleRefresh drops the store's cached document index and headings, so
// edits made outside the server are picked up.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refresher, ok := s.store.(Refresher)
	if !ok {
		respond(w, http.StatusOK, map[string]string{"status": "unchanged"})
		return
	}
	refresher.Invalidate()
	logging.InfoContext(r.Context(), "vault_refreshed")
	respond(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		logging.DebugContext(r.Context(), "invalid_request_body", "path", r.URL.Path, "error", err.Error())
		respond(w, http.StatusBadRequest, Response{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondRender answers a render. Failures keep an empty output and carry
// the user-facing notice.
func respondRender(w http.ResponseWriter, out string, err error) {
	if err != nil {
		respond(w, http.StatusUnprocessableEntity, Response{Error: errors.Notice(err)})
		return
	}
	respond(w, http.StatusOK, Response{Output: out})
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("response_encode_failed", "error", err.Error())
	}
}
