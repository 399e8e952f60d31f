package prefs

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kuhabites/kuha-web/pkg/db"
	"github.com/kuhabites/kuha-web/pkg/db/models"
	"github.com/kuhabites/kuha-web/pkg/redis"
)

// Store is a string key/value store for preferences.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every value or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// GormStore keeps preferences in the client_prefs table.
type GormStore struct {
	client *db.Client
}

func NewGormStore(client *db.Client) *GormStore {
	return &GormStore{client: client}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return s.client.DB()
	}
	return s.client.DB().WithContext(ctx)
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row models.ClientPref
	err := s.conn(ctx).Where("pref_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	return upsertPref(s.conn(ctx), key, value, time.Now().UTC())
}

func (s *GormStore) SetMany(ctx context.Context, values map[string]string) error {
	now := time.Now().UTC()
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, key := range sortedKeys(values) {
			if err := upsertPref(tx, key, values[key], now); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertPref(conn *gorm.DB, key, value string, now time.Time) error {
	row := models.ClientPref{Key: key, Value: value, UpdatedAt: now}
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"pref_value", "updated_at"}),
	}).Create(&row).Error
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.conn(ctx).Where("pref_key = ?", key).Delete(&models.ClientPref{}).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// KV is the redis surface used by RedisStore.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetMany(ctx context.Context, values map[string]string) error
	Del(ctx context.Context, keys ...string) error
	PrefKey(name string) string
	Ping(ctx context.Context) error
}

// RedisStore keeps preferences as namespaced redis strings without expiry.
type RedisStore struct {
	kv KV
}

func NewRedisStore(kv KV) *RedisStore {
	return &RedisStore{kv: kv}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.kv.Get(ctx, s.kv.PrefKey(key))
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, s.kv.PrefKey(key), value, 0)
}

func (s *RedisStore) SetMany(ctx context.Context, values map[string]string) error {
	namespaced := make(map[string]string, len(values))
	for key, value := range values {
		namespaced[s.kv.PrefKey(key)] = value
	}
	return s.kv.SetMany(ctx, namespaced)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.kv.Del(ctx, s.kv.PrefKey(key))
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
