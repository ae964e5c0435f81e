package game

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"spades/domain"
)

type websocketSession struct {
	socket *websocket.Conn
}

func newWebsocketSession(conn *websocket.Conn) *websocketSession {
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(time.Minute))
		return nil
	})
	return &websocketSession{socket: conn}
}

func (ws *websocketSession) Read() ([]byte, error) {
	_, data, err := ws.socket.ReadMessage()
	return data, err
}

func (ws *websocketSession) Write(data []byte) error {
	return ws.socket.WriteMessage(websocket.TextMessage, data)
}

func (ws *websocketSession) Ping() error {
	return ws.socket.WriteMessage(websocket.PingMessage, nil)
}

func (ws *websocketSession) Close(reason string) {
	ws.socket.SetWriteDeadline(time.Now().Add(20 * time.Second))
	ws.socket.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
	ws.socket.Close()
}

// Handler exposes the room registry over HTTP: room creation, spectator
// state reads and the websocket endpoint that seats a player.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(registry *Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Health)
	router.POST("/rooms", h.CreateRoom)
	router.GET("/rooms/:id", h.RoomState)
	router.GET("/rooms/:id/join", h.JoinRoom)
}

func (h *Handler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": h.registry.Len()})
}

type createRoomRequest struct {
	ID string `json:"id"`
}

func (h *Handler) CreateRoom(ctx *gin.Context) {
	req := createRoomRequest{}
	// The body is optional; without an id the room gets a random one.
	ctx.ShouldBindJSON(&req)
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	room := h.registry.CreateOrGetRoom(req.ID)
	ctx.JSON(http.StatusCreated, gin.H{"id": room.ID})
}

func (h *Handler) RoomState(ctx *gin.Context) {
	room, err := h.registry.Lookup(ctx.Param("id"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room-not-found"})
		return
	}

	viewer := domain.NoSeat
	if seat, ok := domain.ParseSeat(ctx.Query("seat")); ok {
		viewer = seat
	}
	view, err := room.CurrentState(viewer)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusGone, gin.H{"error": "room-closed"})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (h *Handler) JoinRoom(ctx *gin.Context) {
	seat, ok := domain.ParseSeat(ctx.Query("seat"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-seat"})
		return
	}
	playerID := ctx.Query("player")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	room := h.registry.CreateOrGetRoom(ctx.Param("id"))

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	session := newWebsocketSession(conn)

	if _, err := room.Sit(seat, playerID); err != nil {
		reason := "seat-taken"
		if errors.Is(err, ErrRoomClosed) {
			reason = "room-closed"
		}
		session.Close(reason)
		return
	}

	player := NewPlayer(playerID, seat, room, session, h.log)
	if err := room.Attach(player); err != nil {
		session.Close("room-closed")
		return
	}
	go player.ReadPump()
	go player.WritePump()
}
