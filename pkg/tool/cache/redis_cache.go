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
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
)

type RedisCache struct {
	redisClient *redis.Client
}

var redisClient *redis.Client

// NewRedisCache callers has to make sure the caller has the settings for redis in their env variables.
func NewRedisCache(db int) *RedisCache {
	if redisClient == nil {
		redisConfig := &redis.Options{
			Addr: fmt.Sprintf("%s:%d", config.RedisHost(), config.RedisPort()),
			DB:   db,
		}

		if config.RedisUserName() != "" {
			redisConfig.Username = config.RedisUserName()
		}
		if config.RedisPassword() != "" {
			redisConfig.Password = config.RedisPassword()
		}
		redisClient = redis.NewClient(redisConfig)
	}
	return &RedisCache{redisClient: redisClient}
}

func (c *RedisCache) Write(key, val string, ttl time.Duration) error {
	_, err := c.redisClient.Set(context.TODO(), key, val, ttl).Result()
	return err
}

func (c *RedisCache) Exists(key string) (bool, error) {
	exists, err := c.redisClient.Exists(context.TODO(), key).Result()
	if err != nil {
		return false, err
	}

	return exists == 1, nil
}

func (c *RedisCache) Delete(key string) error {
	return c.redisClient.Del(context.TODO(), key).Err()
}

// Push appends val to the tail of the list at key.
func (c *RedisCache) Push(key, val string) error {
	return c.redisClient.LPush(context.TODO(), key, val).Err()
}

// BlockingPop pops the oldest element of the list at key, waiting up to
// timeout. It returns redis.Nil when the wait times out.
func (c *RedisCache) BlockingPop(ctx context.Context, key string, timeout time.Duration) (string, error) {
	res, err := c.redisClient.BRPop(ctx, timeout, key).Result()
	if err != nil {
		return "", err
	}
	// BRPOP returns [key, value]
	return res[1], nil
}

func (c *RedisCache) ListLen(key string) (int64, error) {
	return c.redisClient.LLen(context.TODO(), key).Result()
}

// IsNil reports whether err is the go-redis empty-reply sentinel.
func IsNil(err error) bool {
	return err == redis.Nil
}
