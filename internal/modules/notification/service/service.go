package notification

import (
	"context"
	"encoding/json"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"go.uber.org/zap"
)

const EventWillingnessCreated = "willingness.created"

// Event is the message hospitals receive over the websocket.
type Event struct {
	Type    string                     `json:"type"`
	Request *entity.WillingnessRequest `json:"request"`
	SentAt  time.Time                  `json:"sent_at"`
}

type NotificationService interface {
	// NotifyWillingnessCreated is best-effort: failures are logged, never
	// returned, so they cannot undo the committed request.
	NotifyWillingnessCreated(ctx context.Context, req *entity.WillingnessRequest)
	Subscribe(ctx context.Context) (<-chan []byte, func(), error)
}

type notificationService struct {
	broadcaster Broadcaster
	log         *zap.Logger
}

func NewNotificationService(broadcaster Broadcaster, log *zap.Logger) NotificationService {
	return &notificationService{broadcaster: broadcaster, log: log}
}

func (s *notificationService) NotifyWillingnessCreated(ctx context.Context, req *entity.WillingnessRequest) {
	payload, err := json.Marshal(Event{
		Type:    EventWillingnessCreated,
		Request: req,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to encode notification", zap.Error(err))
		return
	}

	if err := s.broadcaster.Publish(ctx, payload); err != nil {
		s.log.Warn("failed to publish notification",
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *notificationService) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	return s.broadcaster.Subscribe(ctx)
}
