package preview

import (
	"net/http"
	"time"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/internal/logging"
	"github.com/FocuswithJustin/versequote/internal/server"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PreviewMessage is a quote preview request sent over the WebSocket.
type PreviewMessage struct {
	Seq int64 `json:"seq"`
	QuoteRequest
}

// PreviewResult answers a PreviewMessage. Clients drop results whose Seq
// is older than the latest one they sent.
type PreviewResult struct {
	Session string `json:"session"`
	Seq     int64  `json:"seq"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || server.OriginAllowed(s.cfg.AllowedOrigins, origin)
		},
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		logging.WarnContext(r.Context(), "websocket_upgrade_failed", "error", err.Error())
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logging.WebSocketEvent("session_opened", session, "remote_addr", r.RemoteAddr)
	defer logging.WebSocketEvent("session_closed", session)

	if s.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageSize)
	}

	ctx := logging.WithRequestID(r.Context(), session)
	for {
		var msg PreviewMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.WarnContext(ctx, "websocket_read_failed", "error", err.Error())
			}
			return
		}

		result := PreviewResult{Session: session, Seq: msg.Seq}
		out, err := s.quote(ctx, msg.QuoteRequest)
		if err != nil {
			result.Error = errors.Notice(err)
		} else {
			result.Output = out
		}

		if s.cfg.WriteTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if err := conn.WriteJSON(result); err != nil {
			logging.ErrorContext(ctx, "websocket_write_failed", "error", err.Error())
			return
		}
	}
}
