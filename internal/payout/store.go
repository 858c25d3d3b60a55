package payout

import (
	"fmt"
	"math"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	configBucket = "config"
	rateKey      = "payoutRate"
)

// RateStore persists the payout rate in a local bbolt file so it survives
// sessions. Writes are last-write-wins.
type RateStore struct {
	db *bolt.DB
}

// OpenRateStore opens (or creates) the store at the given path.
func OpenRateStore(path string) (*RateStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open rate store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(configBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare rate store: %w", err)
	}

	return &RateStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *RateStore) Close() error { return s.db.Close() }

// Rate returns the persisted payout rate, defaulting to 0 when none has
// been written yet.
func (s *RateStore) Rate() (float64, error) {
	var rate float64
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(configBucket)).Get([]byte(rateKey))
		if raw == nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return fmt.Errorf("parse stored rate %q: %w", raw, err)
		}
		rate = parsed
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rate, nil
}

// SetRate persists a new payout rate. Negative and non-finite values are
// rejected.
func (s *RateStore) SetRate(rate float64) error {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("payout rate must be a non-negative number, got %v", rate)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		value := strconv.FormatFloat(rate, 'f', -1, 64)
		return tx.Bucket([]byte(configBucket)).Put([]byte(rateKey), []byte(value))
	})
}
