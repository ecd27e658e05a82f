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
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/geosysmlservis/optimizador-mapas/pkg/core"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/queue"
	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
	e "github.com/geosysmlservis/optimizador-mapas/pkg/tool/errors"
	"github.com/geosysmlservis/optimizador-mapas/pkg/util"
)

type EnqueueArgs struct {
	InputBucket  string `json:"input_bucket"`
	OutputBucket string `json:"output_bucket"`
	// MaxFiles left out of the request means the default batch of 5; an
	// explicit 0 enqueues nothing.
	MaxFiles        *int `json:"max_files"`
	HorizontalParts int  `json:"horizontal_parts"`
}

type EnqueueResult struct {
	TasksSent int `json:"tareas_enviadas"`
}

type objectLister interface {
	ListFiles(bucketName, prefix string, recursive bool) ([]string, error)
}

type processedSet interface {
	Load() (map[string]struct{}, error)
}

type taskPusher interface {
	Push(task *queue.Task) error
	InFlight(filePath string) (bool, error)
	MarkInFlight(filePath, taskID string) error
}

func EnqueueTasks(args *EnqueueArgs, logger *zap.SugaredLogger) (*EnqueueResult, error) {
	return enqueueTasks(core.S3Client, core.Tracker, core.TaskQueue, args, logger)
}

func enqueueTasks(store objectLister, processed processedSet, q taskPusher, args *EnqueueArgs, logger *zap.SugaredLogger) (*EnqueueResult, error) {
	if args.InputBucket == "" || args.OutputBucket == "" {
		return nil, e.ErrInvalidParam.AddDesc("input_bucket and output_bucket are required")
	}

	maxFiles := setting.DefaultMaxFiles
	if args.MaxFiles != nil {
		maxFiles = *args.MaxFiles
	}
	if maxFiles < 0 {
		maxFiles = 0
	}
	parts := args.HorizontalParts
	if parts <= 0 {
		parts = setting.DefaultEnqueueParts
	}

	inputBucket, inputPrefix, err := util.ParseStorageURI(args.InputBucket)
	if err != nil {
		return nil, e.ErrInvalidParam.AddErr(err)
	}
	if _, _, err := util.ParseStorageURI(args.OutputBucket); err != nil {
		return nil, e.ErrInvalidParam.AddErr(err)
	}

	keys, err := store.ListFiles(inputBucket, inputPrefix, true)
	if err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}

	trackedSet, err := processed.Load()
	if err != nil {
		return nil, e.ErrInternalError.AddErr(err)
	}

	candidates := lo.Filter(keys, func(key string, _ int) bool {
		if strings.HasSuffix(key, "/") {
			return false
		}
		_, done := trackedSet[key]
		return !done
	})
	if len(candidates) > maxFiles {
		candidates = candidates[:maxFiles]
	}

	var merr *multierror.Error
	sent := 0
	for _, filePath := range candidates {
		pending, err := q.InFlight(filePath)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if pending {
			logger.Infof("skipping %s, already queued", filePath)
			continue
		}

		task := &queue.Task{
			ID:              uuid.NewString(),
			InputBucket:     args.InputBucket,
			OutputBucket:    args.OutputBucket,
			FilePath:        filePath,
			HorizontalParts: parts,
		}
		if err := q.Push(task); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := q.MarkInFlight(filePath, task.ID); err != nil {
			logger.Warnf("failed to mark %s in flight: %v", filePath, err)
		}
		sent++
	}
	if err := merr.ErrorOrNil(); err != nil {
		logger.Errorf("enqueued %d of %d tasks, rest failed: %v", sent, len(candidates), err)
		return nil, e.ErrInternalError.AddErr(err)
	}

	logger.Infof("enqueued %d tasks from %s", sent, args.InputBucket)

	return &EnqueueResult{TasksSent: sent}, nil
}
