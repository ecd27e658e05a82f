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

package util

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseStorageURI splits a bucket URI into bucket name and key prefix.
// Both the legacy "gs://" spelling and "s3://" are accepted, as is a bare
// "bucket/prefix". The prefix may be empty.
func ParseStorageURI(uri string) (bucket, prefix string, err error) {
	trimmed := strings.TrimSpace(uri)
	trimmed = strings.TrimPrefix(trimmed, "gs://")
	trimmed = strings.TrimPrefix(trimmed, "s3://")
	if trimmed == "" {
		return "", "", errors.Errorf("invalid bucket uri %q", uri)
	}

	parts := strings.SplitN(trimmed, "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", errors.Errorf("invalid bucket uri %q", uri)
	}
	if len(parts) == 2 {
		prefix = parts[1]
	}

	return bucket, prefix, nil
}
