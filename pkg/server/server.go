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

package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/queue"
	"github.com/geosysmlservis/optimizador-mapas/pkg/core/schedule"
	"github.com/geosysmlservis/optimizador-mapas/pkg/server/rest"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
)

func Serve(ctx context.Context) error {
	log.Info("optimizador server start...")

	if err := core.Start(ctx); err != nil {
		return err
	}

	engine := rest.NewEngine()
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port()),
		Handler: engine,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher := queue.NewDispatcher(core.TaskQueue)
		dispatcher.Run(ctx)
	}()

	schedule.Start(ctx)

	wg.Add(1)
	go func() {
		defer wg.Done()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("listening on :%d", config.Port())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	wg.Wait()

	return nil
}
