package server

import (
	"errors"

	"NutriGini/internal/assistant"
	"NutriGini/internal/utility"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Websocket message types.
const (
	msgAsk     = "ask"
	msgFurther = "further"
	msgAnswer  = "answer"
	msgError   = "error"
)

// wsRequest is one question sent by a websocket client.
type wsRequest struct {
	Type    string `json:"type"`
	Query   string `json:"query"`
	Further string `json:"further,omitempty"`
}

// wsResponse carries either a Turn or an error back to the client.
type wsResponse struct {
	Type  string          `json:"type"`
	Turn  *assistant.Turn `json:"turn,omitempty"`
	Error string          `json:"error,omitempty"`
}

// websocketHandler answers ask/further messages over a single connection.
// Messages are handled one at a time, in order.
func (s *Server) websocketHandler(c echo.Context) error {
	ip := utility.GetRealIP(c)
	logger := utility.RequestLogger(c)

	// 1. Upgrade HTTP to WebSocket
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	// 2. Register Client
	clientID := uuid.New().String()
	s.hub.Register(clientID, ws)
	defer s.hub.Unregister(clientID)

	// 3. Read Loop
	ctx := c.Request().Context()
	for {
		var req wsRequest
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Str("client_id", clientID).Msg("websocket read failed")
			}
			return nil
		}

		resp := s.answerMessage(c, ip, req)
		if err := ws.WriteJSON(resp); err != nil {
			logger.Warn().Err(err).Str("client_id", clientID).Msg("websocket write failed")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Server) answerMessage(c echo.Context, ip string, req wsRequest) wsResponse {
	if !s.limiter.Allow(ip) {
		return wsResponse{Type: msgError, Error: "too many requests, please try again later"}
	}

	ctx := c.Request().Context()
	var (
		turn *assistant.Turn
		err  error
	)
	switch req.Type {
	case msgAsk, "":
		turn, err = s.assistant.Ask(ctx, req.Query)
	case msgFurther:
		turn, err = s.assistant.Clarify(ctx, req.Query, req.Further)
	default:
		err = errUnknownMessage
	}

	if err != nil {
		if errors.Is(err, errUnknownMessage) {
			return wsResponse{Type: msgError, Error: err.Error()}
		}
		_, msg := errorStatus(err)
		utility.RequestLogger(c).Error().Err(err).Str("type", req.Type).Msg("websocket query failed")
		return wsResponse{Type: msgError, Error: msg}
	}
	return wsResponse{Type: msgAnswer, Turn: turn}
}

var errUnknownMessage = errors.New(`unknown message type, expected "ask" or "further"`)
