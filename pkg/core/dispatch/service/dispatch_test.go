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

package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geosysmlservis/optimizador-mapas/pkg/core/queue"
)

type fakeLister struct {
	keys []string
	err  error
}

func (f *fakeLister) ListFiles(bucket, prefix string, recursive bool) ([]string, error) {
	return f.keys, f.err
}

type fakeProcessed map[string]struct{}

func (f fakeProcessed) Load() (map[string]struct{}, error) { return f, nil }

type fakeQueue struct {
	tasks    []*queue.Task
	inflight map[string]string
	err      error
}

func (f *fakeQueue) Push(task *queue.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeQueue) InFlight(filePath string) (bool, error) {
	_, ok := f.inflight[filePath]
	return ok, nil
}

func (f *fakeQueue) MarkInFlight(filePath, taskID string) error {
	if f.inflight == nil {
		f.inflight = map[string]string{}
	}
	f.inflight[filePath] = taskID
	return nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestEnqueueTasksFiltersTrackedAndDirectories(t *testing.T) {
	store := &fakeLister{keys: []string{
		"entrada/",
		"entrada/a.tif",
		"entrada/b.pdf",
		"entrada/c.jpg",
	}}
	q := &fakeQueue{}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/entrada",
		OutputBucket: "gs://mapas/salida",
	}

	res, err := enqueueTasks(store, fakeProcessed{"entrada/b.pdf": {}}, q, args, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, res.TasksSent)
	require.Len(t, q.tasks, 2)
	assert.Equal(t, "entrada/a.tif", q.tasks[0].FilePath)
	assert.Equal(t, "entrada/c.jpg", q.tasks[1].FilePath)
}

func TestEnqueueTasksHonorsMaxFiles(t *testing.T) {
	store := &fakeLister{keys: []string{
		"e/1.tif", "e/2.tif", "e/3.tif", "e/4.tif",
	}}
	q := &fakeQueue{}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/e",
		OutputBucket: "gs://mapas/s",
		MaxFiles:     lo.ToPtr(2),
	}

	res, err := enqueueTasks(store, fakeProcessed{}, q, args, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, res.TasksSent)
}

func TestEnqueueTasksExplicitZeroMaxFiles(t *testing.T) {
	store := &fakeLister{keys: []string{"e/1.tif", "e/2.tif"}}
	q := &fakeQueue{}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/e",
		OutputBucket: "gs://mapas/s",
		MaxFiles:     lo.ToPtr(0),
	}

	res, err := enqueueTasks(store, fakeProcessed{}, q, args, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, res.TasksSent)
	assert.Empty(t, q.tasks)
}

func TestEnqueueTasksSkipsInFlightFiles(t *testing.T) {
	store := &fakeLister{keys: []string{"e/1.tif", "e/2.tif"}}
	q := &fakeQueue{inflight: map[string]string{"e/1.tif": "t-0"}}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/e",
		OutputBucket: "gs://mapas/s",
	}

	res, err := enqueueTasks(store, fakeProcessed{}, q, args, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TasksSent)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, "e/2.tif", q.tasks[0].FilePath)
	// the freshly queued file is marked so the next scan will not resend it
	assert.Contains(t, q.inflight, "e/2.tif")
}

func TestEnqueueTasksDefaults(t *testing.T) {
	store := &fakeLister{keys: []string{"e/1.tif"}}
	q := &fakeQueue{}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/e",
		OutputBucket: "gs://mapas/s",
	}

	_, err := enqueueTasks(store, fakeProcessed{}, q, args, testLogger())
	require.NoError(t, err)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, 5, q.tasks[0].HorizontalParts)
	assert.NotEmpty(t, q.tasks[0].ID)
	assert.Equal(t, "gs://mapas/e", q.tasks[0].InputBucket)
}

func TestEnqueueTasksMissingBuckets(t *testing.T) {
	_, err := enqueueTasks(&fakeLister{}, fakeProcessed{}, &fakeQueue{}, &EnqueueArgs{}, testLogger())
	assert.Error(t, err)
}

func TestEnqueueTasksPushFailure(t *testing.T) {
	store := &fakeLister{keys: []string{"e/1.tif"}}
	q := &fakeQueue{err: errors.New("redis down")}
	args := &EnqueueArgs{
		InputBucket:  "gs://mapas/e",
		OutputBucket: "gs://mapas/s",
	}

	_, err := enqueueTasks(store, fakeProcessed{}, q, args, testLogger())
	assert.Error(t, err)
}
