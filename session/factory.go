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
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver selects a session store implementation.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverRedis  Driver = "redis"
	DriverBadger Driver = "badger"
)

const defaultTTL = 24 * time.Hour

// StoreOption configures a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
	badgerPath  string
	ttl         time.Duration
}

// WithRedisClient sets the Redis client for the redis driver.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithBadgerPath sets the database directory for the badger driver.
// An empty path opens an in-memory database.
func WithBadgerPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.badgerPath = path
	}
}

// WithTTL sets how long an idle session survives. Applies to the redis
// and badger drivers; the memory driver keeps sessions for the process
// lifetime.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}

// NewStore creates a session store for the named driver.
func NewStore(driver Driver, opts ...StoreOption) (Store, error) {
	config := &storeConfig{ttl: defaultTTL}
	for _, opt := range opts {
		opt(config)
	}

	switch driver {
	case DriverMemory:
		return newMemoryStore(), nil

	case DriverRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisStore{
			client: config.redisClient,
			ttl:    config.ttl,
		}, nil

	case DriverBadger:
		return openBadgerStore(config.badgerPath, config.ttl)

	default:
		return nil, ErrUnknownDriver
	}
}
