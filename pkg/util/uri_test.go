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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageURI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		prefix string
	}{
		{"gs://mapas/entrada/2024", "mapas", "entrada/2024"},
		{"s3://mapas/entrada", "mapas", "entrada"},
		{"mapas/entrada", "mapas", "entrada"},
		{"gs://mapas", "mapas", ""},
		{"s3://mapas/", "mapas", ""},
	}

	for _, tt := range tests {
		bucket, prefix, err := ParseStorageURI(tt.uri)
		require.NoError(t, err, tt.uri)
		assert.Equal(t, tt.bucket, bucket, tt.uri)
		assert.Equal(t, tt.prefix, prefix, tt.uri)
	}
}

func TestParseStorageURIInvalid(t *testing.T) {
	for _, uri := range []string{"", "gs://", "s3:///prefix"} {
		_, _, err := ParseStorageURI(uri)
		assert.Error(t, err, uri)
	}
}
