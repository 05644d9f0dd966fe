package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"emcmap/api/mapi"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

const PAYLOADS_KEY_PREFIX = "payloads/"

var ErrNoArchive = errors.New("no archived payloads found")

// Summary of a recorded pair of feed bodies.
type ArchiveEntry struct {
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetchedAt"`
	Size      int       `json:"size"` // Compressed size in bytes.
}

// Records raw feed bodies so a snapshot can be rebuilt later from exactly what the map served.
//
// IDs start with the fetch time in hex milliseconds so that key order is chronological.
// Large values end up in badger's value log which is never compressed, so values are zstd compressed here.
type Archive struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewArchive(db *badger.DB) (*Archive, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}

	return &Archive{db: db, enc: enc, dec: dec}, nil
}

// Releases the codecs. The underlying db is left open.
func (a *Archive) Close() error {
	a.dec.Close()
	return a.enc.Close()
}

func NewArchiveID(fetchedAt time.Time) string {
	return fmt.Sprintf("%012x-%s", fetchedAt.UnixMilli(), uuid.NewString())
}

// Stores the payloads, returning the ID they can be retrieved with.
func (a *Archive) Put(p mapi.Payloads) (string, error) {
	if p.FetchedAt.IsZero() {
		p.FetchedAt = time.Now()
	}

	id := NewArchiveID(p.FetchedAt)

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("error marshalling payloads for archive: %w", err)
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(PAYLOADS_KEY_PREFIX+id), a.enc.EncodeAll(data, nil))
	})
	if err != nil {
		return "", fmt.Errorf("error putting payloads '%s' into archive: %w", id, err)
	}

	log.WithFields(log.Fields{"id": id, "bytes": len(data)}).Debug("archived payloads")
	return id, nil
}

func (a *Archive) Get(id string) (p mapi.Payloads, err error) {
	err = a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(PAYLOADS_KEY_PREFIX + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNoArchive, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			p, err = a.decode(val)
			return err
		})
	})

	return
}

// The most recently fetched payloads.
func (a *Archive) Latest() (id string, p mapi.Payloads, err error) {
	err = a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(PAYLOADS_KEY_PREFIX)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration has to seek from past the end of the prefix.
		it.Seek([]byte(PAYLOADS_KEY_PREFIX + "\xff"))
		if !it.Valid() {
			return ErrNoArchive
		}

		item := it.Item()
		id = strings.TrimPrefix(string(item.Key()), PAYLOADS_KEY_PREFIX)

		return item.Value(func(val []byte) error {
			p, err = a.decode(val)
			return err
		})
	})

	return
}

// Every archived entry, oldest first.
func (a *Archive) List() ([]ArchiveEntry, error) {
	entries := []ArchiveEntry{}

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(PAYLOADS_KEY_PREFIX)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), PAYLOADS_KEY_PREFIX)

			fetchedAt, err := fetchedAtFromID(id)
			if err != nil {
				log.WithFields(log.Fields{"id": id, "err": err}).Warn("skipping archive entry with malformed id")
				continue
			}

			entries = append(entries, ArchiveEntry{
				ID:        id,
				FetchedAt: fetchedAt,
				Size:      int(item.ValueSize()),
			})
		}

		return nil
	})

	return entries, err
}

func (a *Archive) Delete(id string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(PAYLOADS_KEY_PREFIX + id))
	})
}

func (a *Archive) decode(val []byte) (mapi.Payloads, error) {
	var p mapi.Payloads

	data, err := a.dec.DecodeAll(val, nil)
	if err != nil {
		return p, fmt.Errorf("error decompressing archived payloads: %w", err)
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("error unmarshalling archived payloads: %w", err)
	}

	return p, nil
}

func fetchedAtFromID(id string) (time.Time, error) {
	ms, _, found := strings.Cut(id, "-")
	if !found {
		return time.Time{}, fmt.Errorf("archive id %q has no timestamp", id)
	}

	v, err := strconv.ParseInt(ms, 16, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(v), nil
}
