package ws

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/reciteapp/recite-api/internal/api"
	"github.com/reciteapp/recite-api/internal/api/shared"
	"github.com/reciteapp/recite-api/internal/config"
	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/domain/grading"
	"github.com/reciteapp/recite-api/internal/platform/logger"
	"github.com/reciteapp/recite-api/internal/service"
	"github.com/reciteapp/recite-api/internal/study"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer sizes the outgoing queue. Snapshots are small and the
	// session produces them at human pace, so a modest buffer suffices.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests to a websocket and runs one study
// session per connection. The card set, mode, and pomodoro intervals come
// from query parameters; the set must belong to the authenticated user.
type Handler struct {
	cardSets service.CardSetService
	stats    service.StatsService
	studyCfg config.StudyConfig
	logger   *slog.Logger
}

// NewHandler creates a websocket study handler.
func NewHandler(
	cardSets service.CardSetService,
	stats service.StatsService,
	studyCfg config.StudyConfig,
	log *slog.Logger,
) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		cardSets: cardSets,
		stats:    stats,
		studyCfg: studyCfg,
		logger:   log.With(slog.String("component", "ws_handler")),
	}
}

// ServeHTTP handles GET /study/ws?set_id=...&mode=...&work=...&rest=...
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		api.HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	setID, err := uuid.Parse(r.URL.Query().Get("set_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid set_id")
		return
	}

	mode := domain.StudyMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModeNormal
	}
	if err := mode.Validate(); err != nil {
		api.HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.cardSets.GetSet(r.Context(), userID, setID)
	if err != nil {
		api.HandleAPIError(w, r, err, "")
		return
	}

	workMinutes := h.studyCfg.ClampWorkMinutes(queryInt(r, "work"))
	restMinutes := h.studyCfg.ClampRestMinutes(queryInt(r, "rest"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &client{
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		logger: log.With(slog.String("set_id", set.ID.String())),
	}
	client.bridge = newBridge(client.push)

	session, err := study.NewSession(study.Config{
		UserID:       userID,
		SetID:        set.ID,
		SetName:      set.Name,
		Cards:        set.Cards,
		Mode:         mode,
		WorkDuration: time.Duration(workMinutes) * time.Minute,
		RestDuration: time.Duration(restMinutes) * time.Minute,
		Classifier:   grading.NewDefaultClassifier(),
		Speaker:      client.bridge,
		Capture:      client.bridge,
		Confirm:      client.bridge,
		Stats:        service.NewSessionRecorder(h.stats, log),
		Notify: func(snap study.Snapshot) {
			client.push(Message{Type: TypeSnapshot, Snapshot: &snap})
		},
		Logger: log,
	})
	if err != nil {
		client.push(Message{Type: TypeError, Error: err.Error()})
		close(client.send)
		client.drainAndClose()
		return
	}
	client.session = session

	log.Info("study session connected",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(mode)),
		slog.Int("cards", len(set.Cards)))

	// Initial snapshot so the client renders the gate immediately.
	client.push(Message{Type: TypeSnapshot, Snapshot: snapshotPtr(session.Snapshot())})

	go client.writePump()
	client.readPump()
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func snapshotPtr(snap study.Snapshot) *study.Snapshot { return &snap }

// client owns one websocket connection and its session.
type client struct {
	conn    *websocket.Conn
	send    chan Message
	bridge  *bridge
	session *study.Session
	logger  *slog.Logger
}

// push queues a message for delivery. A full queue means the client has
// stopped reading; the message is dropped and the connection will be torn
// down by the pumps shortly.
func (c *client) push(msg Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		c.logger.Warn("send queue full, dropping message", slog.String("type", string(msg.Type)))
		return false
	}
}

// readPump dispatches inbound messages until the connection dies, then
// tears the session down.
func (c *client) readPump() {
	defer func() {
		c.session.Close()
		c.bridge.Close()
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
		c.handle(msg)
	}
}

// handle applies one inbound message. Control errors are reported back to
// the client but never end the connection.
func (c *client) handle(msg Message) {
	switch msg.Type {
	case TypeUnlock:
		if err := c.session.Unlock(); err != nil {
			c.push(Message{Type: TypeError, Error: err.Error()})
		}
	case TypeConfirmCorrect:
		c.session.ConfirmCorrect()
	case TypeConfirmIncorrect:
		c.session.ConfirmIncorrect()
	case TypeRetry:
		if err := c.session.Retry(); err != nil {
			c.push(Message{Type: TypeError, Error: err.Error()})
		}
	case TypeSkip:
		if err := c.session.Skip(); err != nil {
			c.push(Message{Type: TypeError, Error: err.Error()})
		}
	case TypeSpeakDone, TypeSpeechResult, TypeDecision:
		c.bridge.Resolve(msg)
	case TypePing:
		c.push(Message{Type: TypePong})
	default:
		c.push(Message{Type: TypeError, Error: "unknown message type"})
	}
}

// writePump serializes queued messages onto the connection and keeps the
// connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drainAndClose flushes what is queued and closes the connection, used when
// the session never started.
func (c *client) drainAndClose() {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteJSON(msg)
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = c.conn.Close()
}
