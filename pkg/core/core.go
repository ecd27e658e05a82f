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

// Package core wires the shared clients the services run on.
package core

import (
	"context"

	"github.com/pkg/errors"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/queue"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/tracker"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/s3"
)

var (
	S3Client  *s3.Client
	Tracker   *tracker.Tracker
	TaskQueue *queue.Queue
)

func Start(_ context.Context) error {
	client, err := s3.NewClient(
		config.S3Endpoint(),
		config.S3AccessKey(),
		config.S3SecretKey(),
		config.S3Region(),
		config.S3Insecure(),
	)
	if err != nil {
		return errors.Wrap(err, "init object storage client")
	}
	if err := client.ValidateBucket(config.TrackerBucket()); err != nil {
		return errors.Wrap(err, "tracker bucket unreachable")
	}

	S3Client = client
	Tracker = tracker.New(client, config.TrackerBucket(), config.TrackerFile())
	TaskQueue = queue.NewQueue()

	return nil
}
