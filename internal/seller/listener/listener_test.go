package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bprepo "github.com/fekuna/marketplace-catalog-service/internal/businessprofile/repository"
	"github.com/fekuna/marketplace-catalog-service/internal/database/dbtest"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	userrepo "github.com/fekuna/marketplace-catalog-service/internal/user/repository"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upserted = `{
  "event_id": "e1",
  "event_type": "SellerProfileUpserted",
  "timestamp": "2025-03-01T10:00:00Z",
  "payload": {
    "user_id": "u1",
    "fullname": "Asha Rao",
    "company_name": "Rao Metals",
    "business_profile": {"gst_number": "27AAPFU0939F1Z5", "year_of_establishment": 2009, "city": "Pune"}
  }
}`

func newListener(t *testing.T) (*SellerListener, *userrepo.PGRepository, *bprepo.PGRepository) {
	db := dbtest.New(t)
	users := userrepo.NewPGRepository(db)
	profiles := bprepo.NewPGRepository(db)
	return NewSellerListener(nil, users, profiles, logger.NewNop()), users, profiles
}

func TestUpsertReplicatesSellerAndProfile(t *testing.T) {
	l, users, profiles := newListener(t)
	ctx := context.Background()

	l.processMessage(ctx, []byte(upserted))

	u, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Asha Rao", u.Fullname)
	assert.Equal(t, "seller", u.Role)

	bp, err := profiles.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, bp)
	assert.Equal(t, 2009, bp.YearOfEstablishment)
	assert.Equal(t, "27AAPFU0939F1Z5", bp.GSTNumber)

	// Replaying the event must not create a second profile row.
	l.processMessage(ctx, []byte(upserted))
	again, err := profiles.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, bp.ID, again.ID)
}

func TestUpsertWithoutProfileRemovesIt(t *testing.T) {
	l, _, profiles := newListener(t)
	ctx := context.Background()

	l.processMessage(ctx, []byte(upserted))
	l.processMessage(ctx, []byte(`{"event_type":"SellerProfileUpserted","payload":{"user_id":"u1","fullname":"Asha Rao"}}`))

	bp, err := profiles.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, bp)
}

func TestDeleteRemovesSeller(t *testing.T) {
	l, users, profiles := newListener(t)
	ctx := context.Background()

	l.processMessage(ctx, []byte(upserted))
	l.processMessage(ctx, []byte(`{"event_type":"SellerProfileDeleted","payload":{"user_id":"u1"}}`))

	u, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, u)
	bp, err := profiles.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, bp)
}

func TestIgnoresMalformedAndForeignEvents(t *testing.T) {
	l, users, _ := newListener(t)
	ctx := context.Background()

	l.processMessage(ctx, []byte(`not json`))
	l.processMessage(ctx, []byte(`{"event_type":"OrderCreated","payload":{"user_id":"u1"}}`))
	l.processMessage(ctx, []byte(`{"event_type":"SellerProfileUpserted","payload":{}}`))

	u, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

type scriptedReader struct {
	mu       sync.Mutex
	messages [][]byte
	failures int
	cancel   context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return kafka.Message{}, errors.New("broker unavailable")
	}
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	next := r.messages[0]
	r.messages = r.messages[1:]
	return kafka.Message{Value: next}, nil
}

func TestStartConsumesUntilCancelled(t *testing.T) {
	l, users, _ := newListener(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.consumer = &scriptedReader{messages: [][]byte{[]byte(upserted)}, failures: 1, cancel: cancel}
	l.backoff = time.Millisecond

	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}

	u, err := users.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}
