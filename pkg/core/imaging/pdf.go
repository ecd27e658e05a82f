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
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// TilesToPDF writes one PDF page per tile, each page sized so the tile
// renders at dpi. Pages are emitted in tile order.
func TilesToPDF(tiles []*image.RGBA, outputPath string, dpi int) error {
	if len(tiles) == 0 {
		return errors.New("no tiles to assemble")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	opts := gofpdf.ImageOptions{ImageType: "JPG"}

	for i, tile := range tiles {
		encoded, err := EncodeJPEG(tile, jpegTileQuality)
		if err != nil {
			return errors.Wrapf(err, "encode tile %d", i)
		}

		b := tile.Bounds()
		wPt := float64(b.Dx()) * 72.0 / float64(dpi)
		hPt := float64(b.Dy()) * 72.0 / float64(dpi)

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wPt, Ht: hPt})

		name := fmt.Sprintf("tile-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(encoded))
		pdf.ImageOptions(name, 0, 0, wPt, hPt, false, opts, 0, "")
	}

	if pdf.Err() {
		return errors.Errorf("assemble pdf: %s", pdf.Error())
	}

	return pdf.OutputFileAndClose(outputPath)
}

const jpegTileQuality = 95
