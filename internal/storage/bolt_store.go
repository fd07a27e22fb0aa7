package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	petBucket          = "created_pets"
	timestampValueSize = 8
)

// boltLedger implements a Ledger backed by BoltDB.
type boltLedger struct {
	db  *bolt.DB
	now func() time.Time
}

// openBolt initializes a BoltDB-backed Ledger.
func openBolt(path string) (*boltLedger, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(petBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltLedger{db: db, now: time.Now}, nil
}

// Close closes the BoltDB store.
func (b *boltLedger) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record stores id with the current time. Recording an id twice keeps the first time.
func (b *boltLedger) Record(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("pet id is empty")
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(petBucket))
		if bucket == nil {
			return fmt.Errorf("pet bucket missing")
		}
		if bucket.Get([]byte(id)) != nil {
			return nil
		}
		buf := make([]byte, timestampValueSize)
		binary.BigEndian.PutUint64(buf, uint64(b.now().Unix()))
		return bucket.Put([]byte(id), buf)
	})
}

// Forget removes id; unknown ids are ignored.
func (b *boltLedger) Forget(id string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(petBucket))
		if bucket == nil {
			return fmt.Errorf("pet bucket missing")
		}
		return bucket.Delete([]byte(id))
	})
}

// Entries lists recorded pets, oldest first.
func (b *boltLedger) Entries() ([]Entry, error) {
	var out []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(petBucket))
		if bucket == nil {
			return fmt.Errorf("pet bucket missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			out = append(out, Entry{ID: string(k), CreatedAt: decodeTimestamp(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// decodeTimestamp decodes the stored creation time; malformed values yield the zero time.
func decodeTimestamp(value []byte) time.Time {
	if len(value) != timestampValueSize {
		return time.Time{}
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
