package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sphere-core/internal/domain/entity"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the configured driver: "sqlite" (default) or "postgres".
func OpenDatabase(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		if dsn == "" {
			dsn = "sphere.db"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log, gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// RecordUsage writes one usage_logs row per completion. Requests are
// anonymous, so user_id stays NULL.
func (s *SQLStore) RecordUsage(ctx context.Context, ev entity.UsageEvent) error {
	meta, err := json.Marshal(map[string]any{
		"model":     ev.Model,
		"provider":  ev.Provider,
		"tokens":    ev.TokenCount,
		"operation": ev.Operation,
		"fallback":  ev.Fallback,
	})
	if err != nil {
		return fmt.Errorf("encode usage metadata: %w", err)
	}

	row := UsageLog{
		ToolName:    ev.Tool,
		Action:      ev.Operation,
		CreditsUsed: 1,
		Timestamp:   ev.At,
		Metadata:    string(meta),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// ActivateSubscription is idempotent per gateway reference: a redelivered
// payment marks the existing row active instead of adding another.
func (s *SQLStore) ActivateSubscription(ctx context.Context, a entity.SubscriptionActivation) (bool, error) {
	if a.GatewayID == "" {
		return false, nil
	}
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub Subscription
		err := tx.Where("payment_gateway = ? AND gateway_subscription_id = ?", a.Gateway, a.GatewayID).First(&sub).Error
		switch {
		case err == nil:
			return tx.Model(&sub).Update("status", entity.SubscriptionActive).Error
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		ref := a.GatewayID
		sub = Subscription{
			PlanName:              a.PlanName,
			Status:                entity.SubscriptionActive,
			Amount:                a.Amount,
			Currency:              a.Currency,
			PaymentGateway:        a.Gateway,
			GatewaySubscriptionID: &ref,
		}
		if a.UserEmail != "" {
			var user User
			err := tx.Where("email = ?", a.UserEmail).First(&user).Error
			switch {
			case err == nil:
				sub.UserID = &user.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("activate subscription: %w", err)
	}
	return created, nil
}

// UpdateSubscriptionStatus sets status on the subscriptions matching the
// gateway reference and reports how many rows changed.
func (s *SQLStore) UpdateSubscriptionStatus(ctx context.Context, gateway, gatewayID, status string) (int64, error) {
	if gatewayID == "" {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("payment_gateway = ? AND gateway_subscription_id = ?", gateway, gatewayID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
