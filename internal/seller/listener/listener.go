package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/businessprofile"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/user"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventSellerProfileUpserted = "SellerProfileUpserted"
	EventSellerProfileDeleted  = "SellerProfileDeleted"
)

// MessageReader is the consuming half of *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SellerListener keeps the local users and business_profiles tables in step
// with the onboarding service.
type SellerListener struct {
	consumer MessageReader
	users    user.Repository
	profiles businessprofile.Repository
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewSellerListener(consumer MessageReader, users user.Repository, profiles businessprofile.Repository, log logger.ZapLogger) *SellerListener {
	return &SellerListener{
		consumer: consumer,
		users:    users,
		profiles: profiles,
		logger:   log,
		backoff:  time.Second,
	}
}

func (l *SellerListener) Start(ctx context.Context) {
	l.logger.Info("Starting seller profile listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping seller profile listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type SellerEvent struct {
	EventID   string        `json:"event_id"`
	EventType string        `json:"event_type"`
	Payload   SellerPayload `json:"payload"`
	Timestamp time.Time     `json:"timestamp"`
}

type SellerPayload struct {
	UserID          string          `json:"user_id"`
	Fullname        string          `json:"fullname"`
	CompanyName     string          `json:"company_name"`
	Phone           string          `json:"phone"`
	Role            string          `json:"role"`
	BusinessProfile *ProfilePayload `json:"business_profile"`
}

type ProfilePayload struct {
	ID                  string `json:"id"`
	CompanyName         string `json:"company_name"`
	GSTNumber           string `json:"gst_number"`
	PANNumber           string `json:"pan_number"`
	YearOfEstablishment int    `json:"year_of_establishment"`
	BusinessType        string `json:"business_type"`
	Address             string `json:"address"`
	City                string `json:"city"`
	State               string `json:"state"`
	Verified            bool   `json:"verified"`
}

func (l *SellerListener) processMessage(ctx context.Context, value []byte) {
	var event SellerEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal seller event", zap.Error(err))
		return
	}
	if event.Payload.UserID == "" {
		l.logger.Warn("Seller event without user id", zap.String("event_id", event.EventID))
		return
	}

	log := l.logger.With(zap.String("event_id", event.EventID), zap.String("user_id", event.Payload.UserID))

	switch event.EventType {
	case EventSellerProfileUpserted:
		if err := l.upsert(ctx, &event); err != nil {
			log.Error("Failed to replicate seller profile", zap.Error(err))
			return
		}
		log.Debug("Seller profile replicated")
	case EventSellerProfileDeleted:
		if err := l.users.Delete(ctx, event.Payload.UserID); err != nil {
			log.Error("Failed to remove seller", zap.Error(err))
			return
		}
		log.Debug("Seller removed")
	}
}

func (l *SellerListener) upsert(ctx context.Context, event *SellerEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	p := event.Payload
	role := p.Role
	if role == "" {
		role = model.RoleSeller
	}

	u := &model.User{
		BaseModel:   model.BaseModel{ID: p.UserID, CreatedAt: ts, UpdatedAt: ts},
		Fullname:    p.Fullname,
		CompanyName: p.CompanyName,
		Phone:       p.Phone,
		Role:        role,
	}
	if err := l.users.Upsert(ctx, u); err != nil {
		return err
	}

	if p.BusinessProfile == nil {
		return l.profiles.DeleteByUserID(ctx, p.UserID)
	}

	bp := p.BusinessProfile
	id := bp.ID
	if id == "" {
		id = uuid.NewString()
	}
	return l.profiles.Upsert(ctx, &model.BusinessProfile{
		BaseModel:           model.BaseModel{ID: id, CreatedAt: ts, UpdatedAt: ts},
		UserID:              p.UserID,
		CompanyName:         bp.CompanyName,
		GSTNumber:           bp.GSTNumber,
		PANNumber:           bp.PANNumber,
		YearOfEstablishment: bp.YearOfEstablishment,
		BusinessType:        bp.BusinessType,
		Address:             bp.Address,
		City:                bp.City,
		State:               bp.State,
		Verified:            bp.Verified,
	})
}
