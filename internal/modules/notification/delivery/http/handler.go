package handler

import (
	"net/http"
	"time"

	"anoa.com/bloodconnect/internal/middleware"
	notificationService "anoa.com/bloodconnect/internal/modules/notification/service"
	"anoa.com/bloodconnect/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

type NotificationHandler struct {
	service  notificationService.NotificationService
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewNotificationHandler accepts websocket upgrades from the given origins.
// An empty list allows any origin.
func NewNotificationHandler(service notificationService.NotificationService, allowedOrigins []string, log *zap.Logger) *NotificationHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &NotificationHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
	}
}

// HandleWebSocket streams new willingness requests to a connected hospital
// until either side goes away.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	msgs, cancel, err := h.service.Subscribe(c.Request.Context())
	if err != nil {
		h.log.Error("failed to subscribe to notifications", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications unavailable"})
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("failed to upgrade websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("hospital_id", hospitalID.String()))
	log.Debug("hospital connected to notifications")

	// The client never sends anything; reading only detects the disconnect.
	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("failed to write notification", zap.Error(err))
				return
			}
		case <-clientClosed:
			log.Debug("hospital disconnected from notifications")
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
