/*
Copyright 2024 The GeoSys Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cache

import (
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
)

type RedisLock struct {
	key   string
	mutex *redsync.Mutex
}

func NewRedisLock(key string) *RedisLock {
	return NewRedisLockWithExpiry(key, time.Second*30)
}

func NewRedisLockWithExpiry(key string, expiry time.Duration) *RedisLock {
	NewRedisCache(config.RedisDB())
	pool := goredis.NewPool(redisClient)
	rs := redsync.New(pool)
	return &RedisLock{
		key:   key,
		mutex: rs.NewMutex(key, redsync.WithExpiry(expiry), redsync.WithTries(100)),
	}
}

func (lock *RedisLock) Lock() error {
	return lock.mutex.Lock()
}

func (lock *RedisLock) TryLock() error {
	return lock.mutex.TryLock()
}

func (lock *RedisLock) Unlock() error {
	_, err := lock.mutex.Unlock()
	return err
}
