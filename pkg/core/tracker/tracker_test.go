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

package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	content string
	saved   string
}

func (s *fakeStore) GetObjectText(bucket, key string) (string, error) {
	return s.content, nil
}

func (s *fakeStore) UploadText(bucket, key, content string) error {
	s.saved = content
	return nil
}

type noopLock struct{}

func (noopLock) Lock() error   { return nil }
func (noopLock) Unlock() error { return nil }

func newTestTracker(store *fakeStore) *Tracker {
	t := New(store, "bucket", "tracker.txt")
	t.newLock = func() locker { return noopLock{} }
	return t
}

func TestLoadEmptyTracker(t *testing.T) {
	tr := newTestTracker(&fakeStore{})

	set, err := tr.Load()
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	tr := newTestTracker(&fakeStore{content: "a/b.tif\n\n  \nc/d.pdf\n"})

	set, err := tr.Load()
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "a/b.tif")
	assert.Contains(t, set, "c/d.pdf")
}

func TestAddMergesAndSorts(t *testing.T) {
	store := &fakeStore{content: "zeta.tif\nalpha.tif"}
	tr := newTestTracker(store)

	require.NoError(t, tr.Add("mapa.pdf"))
	assert.Equal(t, "alpha.tif\nmapa.pdf\nzeta.tif", store.saved)
}

func TestAddIsIdempotent(t *testing.T) {
	store := &fakeStore{content: "mapa.pdf"}
	tr := newTestTracker(store)

	require.NoError(t, tr.Add("mapa.pdf"))
	assert.Equal(t, "mapa.pdf", store.saved)
}

func TestAddNothing(t *testing.T) {
	store := &fakeStore{}
	tr := newTestTracker(store)

	require.NoError(t, tr.Add())
	assert.Empty(t, store.saved)
}
