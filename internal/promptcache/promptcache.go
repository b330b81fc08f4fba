// Package promptcache deduplicates LLM prompt text. Prompts are
// normalized and fingerprinted, and fingerprints persist in a bbolt
// file so repeated prompts are recognized across restarts.
package promptcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSeen = []byte("seen_prompts")

// Store persists prompt fingerprints with a TTL.
type Store struct {
	db     *bolt.DB
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Open opens or creates the store file. TTL <= 0 keeps entries forever.
func Open(path string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("promptcache: create storage dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("promptcache: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSeen)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("promptcache: init bucket: %w", err)
	}

	return &Store{db: db, ttl: ttl, logger: logger, now: time.Now}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint returns the hex SHA-256 of the normalized prompt.
// Normalization lowercases and collapses all whitespace runs so
// cosmetic differences don't defeat deduplication.
func Fingerprint(prompt string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Seen marks the prompt as seen and reports whether a live entry
// already existed. The timestamp refreshes on every call.
func (s *Store) Seen(prompt string) (bool, error) {
	key := []byte(Fingerprint(prompt))
	nowUnix := s.now().Unix()

	var existed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSeen)
		if raw := bucket.Get(key); raw != nil && !s.expired(raw, nowUnix) {
			existed = true
		}

		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(nowUnix))
		return bucket.Put(key, value)
	})
	if err != nil {
		return false, fmt.Errorf("promptcache: record prompt: %w", err)
	}
	return existed, nil
}

// Cleanup removes entries older than the TTL and returns how many were
// dropped.
func (s *Store) Cleanup() (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	nowUnix := s.now().Unix()

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSeen)
		cursor := bucket.Cursor()
		for key, raw := cursor.First(); key != nil; key, raw = cursor.Next() {
			if s.expired(raw, nowUnix) {
				if err := cursor.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("promptcache: cleanup: %w", err)
	}

	if removed > 0 {
		s.logger.Info("Pruned expired prompt fingerprints", slog.Int("removed", removed))
	}
	return removed, nil
}

func (s *Store) expired(raw []byte, nowUnix int64) bool {
	if s.ttl <= 0 || len(raw) != 8 {
		return false
	}
	storedAt := int64(binary.BigEndian.Uint64(raw))
	return nowUnix-storedAt > int64(s.ttl.Seconds())
}
