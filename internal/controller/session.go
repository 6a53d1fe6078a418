package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/converter"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/integrations/wmPubsub"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	sessionWriteWait  = 10 * time.Second
	sessionReadLimit  = 4096
	sessionBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FieldUpdate is a client frame editing one form field.
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SessionFrame is a server frame carrying the widget state.
type SessionFrame struct {
	Session string `json:"session"`
	converter.Snapshot
	Display string `json:"display"`
	Error   string `json:"error,omitempty"`
}

// ConverterSession godoc
// @Summary Live converter session
// @Description WebSocket endpoint driving one converter widget. Client frames
// @Description are {"field":"amount|symbol|convert","value":"..."}; server
// @Description frames are widget snapshots.
// @Tags converter
// @Success 101 {string} string "Switching Protocols"
// @Router /api/converter/ws [get]
func (c *Controller) ConverterSession(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	logger := c.logger.With("session", id)

	sessCtx, cancel := context.WithCancel(c.ctx)
	defer cancel()

	frames := wmPubsub.New(
		wmPubsub.WithChannel(make(chan []byte, sessionBufferSize)),
		wmPubsub.WithContext(sessCtx),
		wmPubsub.WithTopic("converter."+id),
		wmPubsub.WithLogger(logger),
		wmPubsub.WithHandler(func(payload []byte) error {
			if err := conn.SetWriteDeadline(time.Now().Add(sessionWriteWait)); err != nil {
				return err
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				cancel()
				return errors.Wrap(err, "failed to write frame")
			}
			return nil
		}),
	)
	if err := frames.Subscribe(); err != nil {
		logger.Error("failed to start session publisher", "error", err)
		return
	}
	// the writer must be gone before the connection closes
	defer func() {
		cancel()
		<-frames.Done()
	}()

	publish := func(frame SessionFrame) {
		frame.Session = id
		frame.Display = frame.Snapshot.Display()
		payload, err := json.Marshal(frame)
		if err != nil {
			logger.Error("failed to encode frame", "error", err)
			return
		}
		if err := frames.Publish(payload); err != nil && sessCtx.Err() == nil {
			logger.Warn("failed to publish frame", "error", err)
		}
	}

	opts := []converter.Option{
		converter.WithContext(sessCtx),
		converter.WithLogger(logger),
		converter.WithLister(c.lister),
		converter.WithConverter(c.converter),
		converter.WithDelay(c.delay),
		converter.WithOnChange(func(s converter.Snapshot) {
			publish(SessionFrame{Snapshot: s})
		}),
	}
	if c.wsJournal != nil {
		opts = append(opts, converter.WithRecorder(c.wsJournal))
	}
	widget, err := converter.NewController(opts...)
	if err != nil {
		logger.Error("failed to create converter", "error", err)
		return
	}

	c.sessions.Set(id, widget)
	defer c.sessions.Delete(id)
	defer widget.Stop()

	publish(SessionFrame{Snapshot: widget.Snapshot()})
	if err := widget.Start(); err != nil {
		logger.Error("failed to start converter", "error", err)
		return
	}
	logger.Info("converter session opened")

	conn.SetReadLimit(sessionReadLimit)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("converter session closed unexpectedly", "error", err)
			}
			break
		}

		var update FieldUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			logger.Debug("invalid frame", "error", err)
			publish(SessionFrame{Snapshot: widget.Snapshot(), Error: "invalid frame"})
			continue
		}

		switch update.Field {
		case "amount":
			widget.SetAmount(update.Value)
		case "symbol":
			widget.SetSymbol(update.Value)
		case "convert":
			widget.SetConvert(update.Value)
		default:
			publish(SessionFrame{Snapshot: widget.Snapshot(), Error: "unknown field " + update.Field})
		}
	}

	logger.Info("converter session closed")
}
