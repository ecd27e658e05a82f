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
	"image/draw"
)

// SplitHorizontally cuts img into parts horizontal bands of equal height.
// The last band absorbs the remainder rows. parts is clamped to [1, height].
func SplitHorizontally(img *image.RGBA, parts int) []*image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if parts < 1 {
		parts = 1
	}
	if parts > h {
		parts = h
	}

	tileHeight := h / parts
	tiles := make([]*image.RGBA, 0, parts)
	for i := 0; i < parts; i++ {
		y1 := i * tileHeight
		y2 := (i + 1) * tileHeight
		if i == parts-1 {
			y2 = h
		}

		tile := image.NewRGBA(image.Rect(0, 0, w, y2-y1))
		draw.Draw(tile, tile.Bounds(), img, image.Pt(b.Min.X, b.Min.Y+y1), draw.Src)
		tiles = append(tiles, tile)
	}

	return tiles
}
