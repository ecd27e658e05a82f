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
	"image"
	"image/jpeg"
	"math"
	"os"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
	fsutil "github.com/geosysmlservis/optimizador-mapas/pkg/util/fs"
)

// ErrCannotReduce is returned when the compression loop bottoms out at the
// quality and scale floors without getting under the size ceiling.
var ErrCannotReduce = errors.New("could not reduce the file without compromising quality")

// CompressAdaptively produces a JPEG at outputPath that fits under the
// 30 MiB ceiling. Oversized scans above the megapixel cap are downscaled
// first; then quality drops from 95 to 90 in steps of 5, and after that the
// geometry shrinks in steps of 0.05 down to half size.
func CompressAdaptively(inputPath, outputPath string) error {
	return compressToLimit(inputPath, outputPath, setting.MaxFileSize)
}

func compressToLimit(inputPath, outputPath string, maxSize int) error {
	originalSize, err := fsutil.FileSize(inputPath)
	if err != nil {
		return err
	}

	img, err := DecodeOriented(inputPath)
	if err != nil {
		return errors.Wrapf(err, "decode %s", inputPath)
	}

	bounds := img.Bounds()
	megapixels := float64(bounds.Dx()) * float64(bounds.Dy()) / 1e6
	if originalSize > int64(maxSize) && megapixels > setting.MaxMegapixels {
		factor := math.Sqrt(setting.MaxMegapixels / megapixels)
		img = Resize(img, int(float64(bounds.Dx())*factor), int(float64(bounds.Dy())*factor))
		bounds = img.Bounds()
	}

	resizeFactor := 1.0
	quality := setting.InitialJPEGQuality

	for {
		resized := img
		if resizeFactor < 1.0 {
			resized = Resize(img,
				int(float64(bounds.Dx())*resizeFactor),
				int(float64(bounds.Dy())*resizeFactor))
		}

		encoded, err := EncodeJPEG(resized, quality)
		if err != nil {
			return err
		}
		if len(encoded) <= maxSize {
			return os.WriteFile(outputPath, encoded, 0644)
		}

		if quality > setting.MinJPEGQuality {
			quality -= setting.JPEGQualityStep
		} else if resizeFactor > setting.MinResizeFactor {
			resizeFactor -= setting.ResizeFactorStep
		} else {
			return ErrCannotReduce
		}
	}
}

// Resize scales src to width x height with Catmull-Rom resampling.
func Resize(src *image.RGBA, width, height int) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return dst
}

// EncodeJPEG renders img as a baseline JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
