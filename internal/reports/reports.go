// Package reports caches finalized dashboard payloads in SQLite so
// repeated requests within the TTL don't re-query the GA4 API.
package reports

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CachedReport is one cached dashboard payload. Key identifies the
// report kind plus its parameters; Payload is the finalized JSON.
type CachedReport struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"uniqueIndex;size:64;not null"`
	Kind      string `gorm:"index;not null"`
	Payload   []byte `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cache reads and writes cached reports with a fixed TTL.
type Cache struct {
	db     *gorm.DB
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewCache builds a report cache. TTL <= 0 disables caching: Get always
// misses and Store is a no-op.
func NewCache(db *gorm.DB, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{db: db, ttl: ttl, logger: logger, now: time.Now}
}

// CacheKey derives the stable lookup key for a report kind and its
// request parameters.
func CacheKey(kind, propertyID, startDate, endDate string) string {
	sum := sha256.Sum256([]byte(kind + "|" + propertyID + "|" + startDate + "|" + endDate))
	return hex.EncodeToString(sum[:])
}

// Get unmarshals a live cached payload into out and reports a hit.
// Expired or missing entries are a miss, never an error.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	if c.ttl <= 0 {
		return false, nil
	}

	var record CachedReport
	err := c.db.Where("key = ? AND expires_at > ?", key, c.now()).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reports: cache lookup: %w", err)
	}

	if err := json.Unmarshal(record.Payload, out); err != nil {
		// A corrupt payload behaves like a miss so the caller refetches.
		c.logger.Warn("Discarding undecodable cached report",
			slog.String("key", key), slog.Any("error", err))
		return false, nil
	}
	return true, nil
}

// Store upserts the payload under the key with a fresh expiry.
func (c *Cache) Store(key, kind string, payload interface{}) error {
	if c.ttl <= 0 {
		return nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("reports: encode payload: %w", err)
	}

	record := CachedReport{
		Key:       key,
		Kind:      kind,
		Payload:   encoded,
		ExpiresAt: c.now().Add(c.ttl),
	}
	err = c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "payload", "expires_at", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("reports: store payload: %w", err)
	}
	return nil
}

// Cleanup deletes expired entries and returns how many were removed.
func (c *Cache) Cleanup() (int64, error) {
	result := c.db.Where("expires_at <= ?", c.now()).Delete(&CachedReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("reports: cleanup: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		c.logger.Info("Pruned expired cached reports", slog.Int64("removed", result.RowsAffected))
	}
	return result.RowsAffected, nil
}
