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

package poppler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRenderedImage(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "page")

	// pdftoppm pads the suffix based on total pages
	require.NoError(t, os.WriteFile(prefix+"-01.jpg", []byte("x"), 0644))

	got, err := findRenderedImage(prefix, 1)
	require.NoError(t, err)
	assert.Equal(t, prefix+"-01.jpg", got)
}

func TestFindRenderedImageMissing(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "page")

	_, err := findRenderedImage(prefix, 1)
	assert.Error(t, err)
}

func TestPageIndexFromName(t *testing.T) {
	assert.Equal(t, 1, pageIndexFromName("/tmp/work/page-1.jpg"))
	assert.Equal(t, 12, pageIndexFromName("/tmp/work/page-0012.jpg"))
	assert.Equal(t, 0, pageIndexFromName("/tmp/work/page.jpg"))
}
