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

// Package tracker maintains the newline-separated registry of fully
// processed files so re-runs of the dispatcher skip them.
package tracker

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/cache"
)

const lockKey = "optimizador:tracker:lock"

type objectStore interface {
	GetObjectText(bucketName, objectKey string) (string, error)
	UploadText(bucketName, objectKey, content string) error
}

type locker interface {
	Lock() error
	Unlock() error
}

type Tracker struct {
	store  objectStore
	bucket string
	object string

	newLock func() locker
}

func New(store objectStore, bucket, object string) *Tracker {
	return &Tracker{
		store:  store,
		bucket: bucket,
		object: object,
		newLock: func() locker {
			return cache.NewRedisLock(lockKey)
		},
	}
}

// Load returns the set of processed file paths. A missing tracker object
// yields an empty set.
func (t *Tracker) Load() (map[string]struct{}, error) {
	content, err := t.store.GetObjectText(t.bucket, t.object)
	if err != nil {
		return nil, errors.Wrap(err, "load tracker")
	}

	set := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}

	return set, nil
}

// Add merges paths into the tracker under a distributed lock, so concurrent
// workers cannot lose each other's updates. The stored form is sorted and
// newline-joined.
func (t *Tracker) Add(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	lock := t.newLock()
	if err := lock.Lock(); err != nil {
		return errors.Wrap(err, "acquire tracker lock")
	}
	defer lock.Unlock()

	existing, err := t.Load()
	if err != nil {
		return err
	}
	for _, p := range paths {
		existing[p] = struct{}{}
	}

	all := make([]string, 0, len(existing))
	for p := range existing {
		all = append(all, p)
	}
	sort.Strings(all)

	if err := t.store.UploadText(t.bucket, t.object, strings.Join(all, "\n")); err != nil {
		return errors.Wrap(err, "store tracker")
	}

	return nil
}
