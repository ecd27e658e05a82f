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

package queue

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/httpclient"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
)

const popTimeout = 5 * time.Second

// Dispatcher drains the queue with a fixed pool of workers and POSTs each
// task to the worker endpoint, retrying with exponential backoff the way the
// managed push queue used to.
type Dispatcher struct {
	queue     *Queue
	client    *httpclient.Client
	workerURL string
	workers   int
	retries   uint64
}

func NewDispatcher(q *Queue) *Dispatcher {
	return &Dispatcher{
		queue:     q,
		client:    httpclient.New(),
		workerURL: config.WorkerURL(),
		workers:   config.DispatchWorkers(),
		retries:   5,
	}
}

// Run blocks until ctx is canceled and every worker has drained out.
func (d *Dispatcher) Run(ctx context.Context) {
	log.Infof("dispatcher: starting %d workers, delivering to %s", d.workers, d.workerURL)

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			d.work(ctx, worker)
		}(i)
	}
	wg.Wait()

	log.Info("dispatcher: stopped")
}

func (d *Dispatcher) work(ctx context.Context, worker int) {
	for {
		if ctx.Err() != nil {
			return
		}

		task, err := d.queue.Pop(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Errorf("dispatcher[%d]: pop failed: %v", worker, err)
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}

		if err := d.deliver(ctx, task); err != nil {
			log.Errorf("dispatcher[%d]: task %s for %s dropped after retries: %v",
				worker, task.ID, task.FilePath, err)
			continue
		}
		log.Infof("dispatcher[%d]: task %s for %s delivered", worker, task.ID, task.FilePath)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, task *Task) error {
	var verdict struct {
		Processed string `json:"procesado"`
		Skipped   string `json:"skipped"`
	}
	op := func() error {
		_, err := d.client.Post(d.workerURL,
			httpclient.SetBody(task), httpclient.SetResult(&verdict))
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.retries), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return err
	}
	if verdict.Skipped != "" {
		log.Infof("worker skipped %s", verdict.Skipped)
	}

	return nil
}
