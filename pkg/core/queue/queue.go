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

// Package queue is the Redis-backed processing queue. Enqueued tasks are
// delivered to the worker endpoint by the dispatcher pool, mirroring the
// push-queue semantics the pipeline originally ran on.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/cache"
)

// Task is one file to process. The JSON layout matches the worker request
// body, so a task can be POSTed as-is.
type Task struct {
	ID              string `json:"task_id"`
	InputBucket     string `json:"input_bucket"`
	OutputBucket    string `json:"output_bucket"`
	FilePath        string `json:"file_path"`
	HorizontalParts int    `json:"horizontal_parts"`
}

type Queue struct {
	cache *cache.RedisCache
	name  string
}

func NewQueue() *Queue {
	return &Queue{
		cache: cache.NewRedisCache(config.RedisDB()),
		name:  config.TaskQueueName(),
	}
}

func (q *Queue) Push(task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "marshal task")
	}

	return q.cache.Push(q.name, string(payload))
}

// Pop blocks up to timeout for the next task. It returns (nil, nil) when the
// wait times out with an empty queue.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*Task, error) {
	payload, err := q.cache.BlockingPop(ctx, q.name, timeout)
	if err != nil {
		if cache.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	task := new(Task)
	if err := json.Unmarshal([]byte(payload), task); err != nil {
		return nil, errors.Wrap(err, "unmarshal task")
	}

	return task, nil
}

func (q *Queue) Len() (int64, error) {
	return q.cache.ListLen(q.name)
}

const (
	inFlightPrefix = "optimizador:inflight:"

	// inFlightTTL bounds how long a crashed worker can keep a file blocked
	// from re-enqueueing.
	inFlightTTL = time.Hour
)

// MarkInFlight records that filePath has a pending task, so repeated scans
// do not enqueue the same file twice.
func (q *Queue) MarkInFlight(filePath, taskID string) error {
	return q.cache.Write(inFlightPrefix+filePath, taskID, inFlightTTL)
}

func (q *Queue) InFlight(filePath string) (bool, error) {
	return q.cache.Exists(inFlightPrefix + filePath)
}

// ClearInFlight releases the mark once the file has been processed.
func (q *Queue) ClearInFlight(filePath string) error {
	return q.cache.Delete(inFlightPrefix + filePath)
}
