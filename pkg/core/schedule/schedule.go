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

// Package schedule runs the optional periodic bucket scan, so deployments
// without an external caller still feed the queue.
package schedule

import (
	"context"

	"github.com/jasonlvhit/gocron"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/dispatch/service"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/cache"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
)

const scanLockKey = "optimizador:scan:lock"

// Start registers the periodic scan when SCAN_INTERVAL_MINUTES and the scan
// bucket URIs are configured, otherwise it does nothing.
func Start(ctx context.Context) {
	interval := config.ScanIntervalMinutes()
	if interval <= 0 || config.ScanInputBucket() == "" || config.ScanOutputBucket() == "" {
		log.Debug("scheduled scan disabled")
		return
	}

	scheduler := gocron.NewScheduler()
	if err := scheduler.Every(uint64(interval)).Minutes().Do(runScan); err != nil {
		log.Errorf("failed to register scheduled scan: %v", err)
		return
	}

	log.Infof("scheduled scan of %s every %d minutes", config.ScanInputBucket(), interval)

	stopped := scheduler.Start()
	go func() {
		<-ctx.Done()
		stopped <- true
	}()
}

func runScan() {
	lock := cache.NewRedisLock(scanLockKey)
	if err := lock.TryLock(); err != nil {
		log.Debugf("scan already running on another replica: %v", err)
		return
	}
	defer lock.Unlock()

	maxFiles := config.ScanMaxFiles()
	args := &service.EnqueueArgs{
		InputBucket:     config.ScanInputBucket(),
		OutputBucket:    config.ScanOutputBucket(),
		MaxFiles:        &maxFiles,
		HorizontalParts: config.ScanParts(),
	}

	res, err := service.EnqueueTasks(args, log.SugaredLogger())
	if err != nil {
		log.Errorf("scheduled scan failed: %v", err)
		return
	}
	log.Infof("scheduled scan enqueued %d tasks", res.TasksSent)
}
