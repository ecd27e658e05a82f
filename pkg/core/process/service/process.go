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
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/geosysmlservis/optimizador-mapas/pkg/core"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/imaging"
	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
	e "github.com/geosysmlservis/optimizador-mapas/pkg/tool/errors"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/poppler"
	"github.com/geosysmlservis/optimizador-mapas/pkg/util"
)

type ProcessArgs struct {
	InputBucket     string `json:"input_bucket"`
	OutputBucket    string `json:"output_bucket"`
	FilePath        string `json:"file_path"`
	HorizontalParts int    `json:"horizontal_parts"`
}

// ProcessResult renders as exactly one of {"procesado": ...} or
// {"skipped": ...}, the contract the enqueue side's consumers rely on.
type ProcessResult struct {
	Processed string `json:"procesado,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
}

type objectStore interface {
	Download(bucketName, objectKey, dest string) error
	Upload(bucketName, src, objectKey string) error
}

type trackerStore interface {
	Add(paths ...string) error
}

type inFlightStore interface {
	ClearInFlight(filePath string) error
}

var rasterExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tif":  {},
	".tiff": {},
}

func ProcessSingle(ctx context.Context, args *ProcessArgs, logger *zap.SugaredLogger) (*ProcessResult, error) {
	return processSingle(ctx, core.S3Client, core.Tracker, core.TaskQueue, args, logger)
}

func processSingle(ctx context.Context, store objectStore, tracked trackerStore, marks inFlightStore, args *ProcessArgs, logger *zap.SugaredLogger) (*ProcessResult, error) {
	if args.InputBucket == "" || args.OutputBucket == "" || args.FilePath == "" {
		return nil, e.ErrInvalidParam.AddDesc("input_bucket, output_bucket and file_path are required")
	}

	parts := args.HorizontalParts
	if parts <= 0 {
		parts = setting.DefaultProcessingParts
	}

	inputBucket, _, err := util.ParseStorageURI(args.InputBucket)
	if err != nil {
		return nil, e.ErrInvalidParam.AddErr(err)
	}
	outputBucket, outputPrefix, err := util.ParseStorageURI(args.OutputBucket)
	if err != nil {
		return nil, e.ErrInvalidParam.AddErr(err)
	}

	tmpDir, err := os.MkdirTemp("", "optimizador-")
	if err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}
	defer os.RemoveAll(tmpDir)

	baseName := path.Base(args.FilePath)
	localPath := filepath.Join(tmpDir, baseName)
	if err := store.Download(inputBucket, args.FilePath, localPath); err != nil {
		return nil, e.ErrInternalError.AddErr(errors.Wrapf(err, "download %s", args.FilePath))
	}

	var imagePath string
	ext := strings.ToLower(filepath.Ext(baseName))
	switch {
	case ext == ".pdf":
		pages, err := poppler.PageCount(ctx, localPath)
		if err != nil {
			return nil, e.ErrInternalError.AddErr(err)
		}
		if pages > 1 {
			logger.Infof("%s has %d pages, rendering only the first", args.FilePath, pages)
		}
		imagePath, err = poppler.RenderFirstPage(ctx, localPath, tmpDir, setting.TargetDPI)
		if err != nil {
			return nil, e.ErrInternalError.AddErr(err)
		}
	case isRaster(ext):
		imagePath = filepath.Join(tmpDir, "image.jpg")
		if err := imaging.CompressAdaptively(localPath, imagePath); err != nil {
			return nil, e.ErrInternalError.AddErr(err)
		}
	default:
		logger.Infof("skipping %s, unsupported extension %q", args.FilePath, ext)
		clearInFlight(marks, args.FilePath, logger)
		return &ProcessResult{Skipped: baseName}, nil
	}

	img, err := imaging.DecodeOriented(imagePath)
	if err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}

	finalPDF := filepath.Join(tmpDir, "final.pdf")
	tiles := imaging.SplitHorizontally(img, parts)
	if err := imaging.TilesToPDF(tiles, finalPDF, setting.TargetDPI); err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}

	outputKey := path.Join(outputPrefix, strings.TrimSuffix(baseName, ext)+"_tiles.pdf")
	if err := store.Upload(outputBucket, finalPDF, outputKey); err != nil {
		return nil, e.ErrInternalError.AddErr(errors.Wrapf(err, "upload %s", outputKey))
	}

	if err := tracked.Add(args.FilePath); err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}
	clearInFlight(marks, args.FilePath, logger)

	logger.Infof("processed %s into %d tiles at %s", args.FilePath, len(tiles), outputKey)

	return &ProcessResult{Processed: args.FilePath}, nil
}

// A stale in-flight mark only delays the next enqueue until the TTL runs
// out, so a failed release is not worth failing the request over.
func clearInFlight(marks inFlightStore, filePath string, logger *zap.SugaredLogger) {
	if err := marks.ClearInFlight(filePath); err != nil {
		logger.Warnf("failed to release in-flight mark for %s: %v", filePath, err)
	}
}

func isRaster(ext string) bool {
	_, ok := rasterExtensions[ext]
	return ok
}
