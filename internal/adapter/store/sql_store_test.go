package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sphere-core/internal/domain/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := fmt.Sprintf("file:sphere_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := OpenDatabase("sqlite", dsn, zap.NewNop())
	require.NoError(t, err)

	s := NewSQLStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStoreRecordUsage(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	at := time.Date(2025, 10, 17, 11, 16, 0, 0, time.UTC)

	err := s.RecordUsage(ctx, entity.UsageEvent{
		Tool: "content_generator", Operation: "generate_content",
		Model: "gpt-4-turbo-preview", Provider: "openai", TokenCount: 321, At: at,
	})
	require.NoError(t, err)

	var rows []UsageLog
	require.NoError(t, s.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].UserID)
	assert.Equal(t, "content_generator", rows[0].ToolName)
	assert.Equal(t, "generate_content", rows[0].Action)
	assert.Equal(t, 1, rows[0].CreditsUsed)

	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(rows[0].Metadata), &meta))
	assert.Equal(t, "openai", meta["provider"])
	assert.EqualValues(t, 321, meta["tokens"])

	assert.Equal(t, false, meta["fallback"])
}

func TestSQLStoreUpdateSubscriptionStatus(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	ref := "pi_1"
	other := "pi_2"
	require.NoError(t, s.db.Create(&[]Subscription{
		{PlanName: "growth", Status: "pending", PaymentGateway: "stripe", GatewaySubscriptionID: &ref},
		{PlanName: "starter", Status: "pending", PaymentGateway: "stripe", GatewaySubscriptionID: &other},
		{PlanName: "growth", Status: "pending", PaymentGateway: "razorpay", GatewaySubscriptionID: &ref},
	}).Error)

	n, err := s.UpdateSubscriptionStatus(ctx, "stripe", "pi_1", entity.SubscriptionActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var subs []Subscription
	require.NoError(t, s.db.Order("id").Find(&subs).Error)
	assert.Equal(t, entity.SubscriptionActive, subs[0].Status)
	assert.Equal(t, "pending", subs[1].Status)
	assert.Equal(t, "pending", subs[2].Status)

	n, err = s.UpdateSubscriptionStatus(ctx, "stripe", "pi_unknown", entity.SubscriptionCancelled)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.UpdateSubscriptionStatus(ctx, "stripe", "", entity.SubscriptionCancelled)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLStoreActivateSubscription(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	user := User{Email: "a@b.co", FullName: "Asha"}
	require.NoError(t, s.db.Create(&user).Error)

	activation := entity.SubscriptionActivation{
		Gateway:   "stripe",
		GatewayID: "pi_1",
		PlanName:  "growth",
		UserEmail: "a@b.co",
		Amount:    29,
		Currency:  "usd",
	}
	created, err := s.ActivateSubscription(ctx, activation)
	require.NoError(t, err)
	assert.True(t, created)

	var subs []Subscription
	require.NoError(t, s.db.Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, "growth", subs[0].PlanName)
	assert.Equal(t, entity.SubscriptionActive, subs[0].Status)
	assert.Equal(t, 29.0, subs[0].Amount)
	assert.Equal(t, "usd", subs[0].Currency)
	require.NotNil(t, subs[0].UserID)
	assert.Equal(t, user.ID, *subs[0].UserID)

	// A redelivered payment reactivates the same row.
	n, err := s.UpdateSubscriptionStatus(ctx, "stripe", "pi_1", entity.SubscriptionCancelled)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	created, err = s.ActivateSubscription(ctx, activation)
	require.NoError(t, err)
	assert.False(t, created)

	subs = nil
	require.NoError(t, s.db.Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, entity.SubscriptionActive, subs[0].Status)
}

func TestSQLStoreActivateSubscriptionWithoutAccount(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	created, err := s.ActivateSubscription(ctx, entity.SubscriptionActivation{
		Gateway: "stripe", GatewayID: "pi_9", PlanName: "starter", UserEmail: "nobody@b.co",
	})
	require.NoError(t, err)
	assert.True(t, created)

	var sub Subscription
	require.NoError(t, s.db.First(&sub).Error)
	assert.Nil(t, sub.UserID)

	created, err = s.ActivateSubscription(ctx, entity.SubscriptionActivation{Gateway: "stripe"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestMigrateCreatesSchema(t *testing.T) {
	s := newTestSQLStore(t)
	for _, table := range []string{"users", "subscriptions", "usage_logs", "generated_content"} {
		assert.True(t, s.db.Migrator().HasTable(table), table)
	}
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase("oracle", "", nil)
	assert.Error(t, err)
}
