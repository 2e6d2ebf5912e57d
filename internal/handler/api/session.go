package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"FinVoice/internal/domain/models"
	"FinVoice/internal/usecase"
	xlogger "FinVoice/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The assistant frontend is served from a different origin in dev.
	CheckOrigin: func(*http.Request) bool { return true },
}

// stageFrame is streamed while a session query moves through the pipeline.
type stageFrame struct {
	Type   string `json:"type"`
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

// resultFrame is the terminal frame for one session query.
type resultFrame struct {
	Type        string  `json:"type"`
	Narrative   string  `json:"narrative"`
	AudioBase64 *string `json:"audio_base64"`
}

// Session serves an interactive assistant connection: the client sends
// {query} frames, the server streams stage progress followed by the final
// {narrative, audio_base64} frame. One query is in flight per connection.
func (h *AssistantHandler) Session(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	for {
		var req models.ProcessRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("session read error", xlogger.Error(err))
			}
			return nil
		}

		obs := func(stage usecase.Stage, detail string) {
			_ = conn.WriteJSON(stageFrame{Type: "stage", Stage: string(stage), Detail: detail})
		}

		resp, err := h.run(ctx, req.Query, obs)
		if err != nil {
			h.logger.Error("session pipeline fault", xlogger.Error(err))
			resp = h.pipeline.Fallback(ctx)
		}
		if err := conn.WriteJSON(resultFrame{Type: "result", Narrative: resp.Narrative, AudioBase64: resp.AudioBase64}); err != nil {
			return nil
		}
	}
}
