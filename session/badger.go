// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const badgerKeyPrefix = "session:"

// badgerStore persists sessions in an embedded BadgerDB. Entries carry
// a TTL so abandoned conversations age out without a sweeper.
type badgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// badgerLoggerAdapter routes badger's internal logging through slog.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any)   { bl.logger.Error(fmt.Sprintf(msg, items...)) }
func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) { bl.logger.Warn(fmt.Sprintf(msg, items...)) }
func (bl *badgerLoggerAdapter) Infof(msg string, items ...any)    { bl.logger.Info(fmt.Sprintf(msg, items...)) }
func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any)   { bl.logger.Debug(fmt.Sprintf(msg, items...)) }

// openBadgerStore opens the database at path, creating the directory if
// needed. An empty path opens an in-memory database.
func openBadgerStore(path string, ttl time.Duration) (*badgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default().With("component", "session")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	return &badgerStore{db: db, ttl: ttl}, nil
}

func (s *badgerStore) Get(_ context.Context, id string) (*Context, error) {
	var data *Context
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(badgerKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = &Context{}
			return json.Unmarshal(val, data)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}
	return data, nil
}

func (s *badgerStore) Put(_ context.Context, data *Context) error {
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	val, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", data.ID, err)
	}
	err = s.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+data.ID), val)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return tx.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("storing session %s: %w", data.ID, err)
	}
	return nil
}

func (s *badgerStore) Delete(_ context.Context, id string) error {
	err := s.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(badgerKeyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
