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

package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
)

func newTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestSplitHorizontallyEvenParts(t *testing.T) {
	img := newTestImage(100, 90)

	tiles := SplitHorizontally(img, 3)
	require.Len(t, tiles, 3)
	for _, tile := range tiles {
		assert.Equal(t, 100, tile.Bounds().Dx())
		assert.Equal(t, 30, tile.Bounds().Dy())
	}
}

func TestSplitHorizontallyLastTileTakesRemainder(t *testing.T) {
	img := newTestImage(40, 100)

	tiles := SplitHorizontally(img, 3)
	require.Len(t, tiles, 3)
	assert.Equal(t, 33, tiles[0].Bounds().Dy())
	assert.Equal(t, 33, tiles[1].Bounds().Dy())
	assert.Equal(t, 34, tiles[2].Bounds().Dy())
}

func TestSplitHorizontallyClampsParts(t *testing.T) {
	img := newTestImage(10, 4)

	tiles := SplitHorizontally(img, 0)
	require.Len(t, tiles, 1)
	assert.Equal(t, 4, tiles[0].Bounds().Dy())

	tiles = SplitHorizontally(img, 100)
	assert.Len(t, tiles, 4)
}

func TestSplitHorizontallyPreservesPixels(t *testing.T) {
	img := newTestImage(8, 8)

	tiles := SplitHorizontally(img, 2)
	require.Len(t, tiles, 2)
	// row 4 of the source is row 0 of the second tile
	assert.Equal(t, img.RGBAAt(3, 4), tiles[1].RGBAAt(3, 0))
}

func TestRotate90CW(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	mark := color.RGBA{R: 255, A: 255}
	img.SetRGBA(0, 0, mark)

	got := rotate90CW(img)
	assert.Equal(t, 3, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())
	// top-left lands in the top-right corner
	assert.Equal(t, mark, got.RGBAAt(2, 0))
}

func TestRotate180(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	mark := color.RGBA{G: 255, A: 255}
	img.SetRGBA(0, 0, mark)

	got := rotate180(img)
	assert.Equal(t, mark, got.RGBAAt(2, 1))
}

func TestRotate90CCW(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	mark := color.RGBA{B: 255, A: 255}
	img.SetRGBA(0, 0, mark)

	got := rotate90CCW(img)
	assert.Equal(t, 3, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())
	assert.Equal(t, mark, got.RGBAAt(0, 1))
}

func TestResizeClampsToOnePixel(t *testing.T) {
	img := newTestImage(10, 10)

	got := Resize(img, 0, 0)
	assert.Equal(t, 1, got.Bounds().Dx())
	assert.Equal(t, 1, got.Bounds().Dy())
}

func TestDecodeOrientedPlainJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.jpg")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, newTestImage(20, 10), nil))
	require.NoError(t, f.Close())

	img, err := DecodeOriented(path)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestDecodeOrientedPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, newTestImage(5, 7)))
	require.NoError(t, f.Close())

	img, err := DecodeOriented(path)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 7, img.Bounds().Dy())
}

func TestCompressAdaptivelySmallImagePassesThrough(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")

	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, newTestImage(400, 300), nil))
	require.NoError(t, f.Close())

	require.NoError(t, CompressAdaptively(in, out))

	img, err := DecodeOriented(out)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

// newNoiseImage is incompressible on purpose, so the JPEG size tracks the
// pixel count instead of collapsing the way flat test gradients do.
func newNoiseImage(w, h int) *image.RGBA {
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func writeJPEG(t *testing.T, path string, img image.Image, quality int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: quality}))
	require.NoError(t, f.Close())
}

func TestCompressAdaptivelyReducesOversizedScan(t *testing.T) {
	if testing.Short() {
		t.Skip("large fixture")
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")

	// 56 MP of noise encodes well past the 30 MiB ceiling at quality 95.
	writeJPEG(t, in, newNoiseImage(7500, 7500), 95)
	inSize, err := os.Stat(in)
	require.NoError(t, err)
	require.Greater(t, inSize.Size(), int64(setting.MaxFileSize))

	require.NoError(t, CompressAdaptively(in, out))

	outSize, err := os.Stat(out)
	require.NoError(t, err)
	assert.LessOrEqual(t, outSize.Size(), int64(setting.MaxFileSize))

	img, err := DecodeOriented(out)
	require.NoError(t, err)
	megapixels := float64(img.Bounds().Dx()) * float64(img.Bounds().Dy()) / 1e6
	assert.LessOrEqual(t, megapixels, float64(setting.MaxMegapixels))
}

func TestCompressToLimitStepsDownGeometry(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")

	writeJPEG(t, in, newNoiseImage(600, 600), 95)

	// too big for this ceiling even at the quality floor, so the loop has to
	// shrink the geometry before it fits
	const ceiling = 200000
	require.NoError(t, compressToLimit(in, out, ceiling))

	outSize, err := os.Stat(out)
	require.NoError(t, err)
	assert.LessOrEqual(t, outSize.Size(), int64(ceiling))

	img, err := DecodeOriented(out)
	require.NoError(t, err)
	assert.Less(t, img.Bounds().Dx(), 600)
}

func TestCompressToLimitCannotReduce(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")

	writeJPEG(t, in, newNoiseImage(100, 100), 95)

	// no JPEG fits in 64 bytes, so the loop must bottom out at the quality
	// and scale floors
	err := compressToLimit(in, out, 64)
	assert.ErrorIs(t, err, ErrCannotReduce)
	assert.NoFileExists(t, out)
}

func TestTilesToPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.pdf")

	tiles := SplitHorizontally(newTestImage(60, 40), 2)
	require.NoError(t, TilesToPDF(tiles, out, 80))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTilesToPDFEmpty(t *testing.T) {
	err := TilesToPDF(nil, filepath.Join(t.TempDir(), "out.pdf"), 80)
	assert.Error(t, err)
}
