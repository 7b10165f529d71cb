package dashboard

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/lib"
)

// SelectionMessage is what the client sends to ask for a flow graph.
type SelectionMessage struct {
	Region  int    `json:"region"`
	Purpose string `json:"purpose"`
}

const (
	messageFlowGraph = "flowgraph"
	messageError     = "error"
)

type reply struct {
	Type    string        `json:"type"`
	Data    interface{}   `json:"data"`
	Elapsed *lib.Duration `json:"elapsed,omitempty"`
}

type errorData struct {
	Message string `json:"message"`
}

func errorReply(err error) reply {
	return reply{Type: messageError, Data: errorData{Message: err.Error()}}
}

func (m SelectionMessage) parse() (commuting.Region, commuting.Purpose, error) {
	region := commuting.Region(m.Region)
	if err := commuting.CheckRegion(region); err != nil {
		return 0, 0, err
	}
	purpose, err := commuting.ParsePurpose(m.Purpose)
	if err != nil {
		return 0, 0, err
	}
	return region, purpose, nil
}

// respond computes the reply to a single client message.
func (s *Server) respond(msg []byte) reply {
	var sel SelectionMessage
	if err := json.Unmarshal(msg, &sel); err != nil {
		return errorReply(errors.Wrap(err, "invalid selection message"))
	}
	region, purpose, err := sel.parse()
	if err != nil {
		return errorReply(err)
	}

	start := time.Now()
	v, err := flowgraph.Build(s.tables, region, purpose)
	if err != nil {
		return errorReply(err)
	}
	elapsed := lib.DurationFrom(time.Since(start))
	return reply{Type: messageFlowGraph, Data: v, Elapsed: &elapsed}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "err", err)
		return
	}
	ws := lib.NewThreadSafeWebSocket(c)
	defer ws.Close()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Debug("session started")

	for {
		_, msg, err := ws.ReadMessageWithin(s.opts.IdleTimeout)
		if err != nil {
			switch {
			case isTimeout(err):
				logger.Debug("session idle, closing")
				_ = ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "idle timeout"))
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				logger.Warn("ws read failed", "err", err)
			default:
				logger.Debug("session ended", "err", err)
			}
			return
		}

		out := s.respond(msg)
		if out.Type == messageError {
			logger.Info("bad selection", "msg", string(msg), "err", out.Data.(errorData).Message)
		}
		if err := ws.WriteJSON(out); err != nil {
			logger.Warn("ws write failed", "err", err)
			return
		}
	}
}
