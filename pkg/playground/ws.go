package playground

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsReadLimit = 64 << 10
)

// wsReply answers one websocket request. Result carries both the raw and
// the optimized tokens.
type wsReply struct {
	OK     bool       `json:"ok"`
	Result *Result    `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// handleWS checks matchers as they are typed: every text message is a
// matcher, or a JSON Request naming a mode, and is answered with one wsReply,
// in order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		s.httpMetrics.RecordWebSocket("error")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	s.logger.Debug("websocket connected", "remote", r.RemoteAddr)
	s.httpMetrics.RecordWebSocket("connect")
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "error", err)
				s.httpMetrics.RecordWebSocket("error")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		s.httpMetrics.RecordWebSocket("message")
		reply := s.wsAnswer(r, data)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			s.httpMetrics.RecordWebSocket("error")
			return
		}
	}
}

func (s *Server) wsAnswer(r *http.Request, data []byte) wsReply {
	route, body, _ := s.compile(r, wsRequest(data))
	if body != nil {
		return wsReply{Error: body}
	}
	return wsReply{OK: true, Result: &Result{
		Matcher:  route.Matcher,
		Mode:     route.Mode,
		Tokens:   route.Tokens,
		Matchers: route.Matchers,
	}}
}

// wsRequest decodes a message. A JSON object is a Request; anything else,
// including "{id}", is the matcher itself in the default mode.
func wsRequest(data []byte) Request {
	var req Request
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &req) == nil {
		return req
	}
	return Request{Matcher: string(data)}
}
