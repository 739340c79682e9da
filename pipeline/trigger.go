// Copyright 2026 StudyReel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/studyreel/studyreel/core"
)

// ErrPipelineRequired is returned when a trigger is built without a pipeline.
var ErrPipelineRequired = errors.New("pipeline required")

// Trigger dispatches material processing onto a worker pool so callers
// (upload handlers, CLI commands) return immediately. Processing errors
// are logged, not returned; the material's status records the outcome.
type Trigger struct {
	pipeline *Pipeline
	pool     *ants.Pool
	logger   *slog.Logger
}

// TriggerOption configures a Trigger.
type TriggerOption func(*Trigger) error

// WithTriggerPoolSize sets the worker pool size for concurrent material
// processing. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithTriggerPoolSize(size int) TriggerOption {
	return func(t *Trigger) error {
		if size < 1 {
			size = 1
		}
		if t.pool != nil {
			t.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		t.pool = pool
		return nil
	}
}

// NewTrigger creates a trigger over the given pipeline.
func NewTrigger(pipeline *Pipeline, opts ...TriggerOption) (*Trigger, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	t := &Trigger{
		pipeline: pipeline,
		pool:     pool,
		logger:   slog.Default().With("component", "trigger"),
	}

	for _, opt := range opts {
		if optErr := opt(t); optErr != nil {
			t.Release()
			return nil, optErr
		}
	}

	return t, nil
}

// Dispatch submits a material for asynchronous processing.
// Errors during processing are logged but do not surface to the caller.
func (t *Trigger) Dispatch(materialID core.ID) error {
	return t.pool.Submit(func() {
		if err := t.pipeline.Process(context.Background(), materialID); err != nil {
			t.logger.Error("error processing material", "material_id", materialID, "err", err)
		}
	})
}

// Release releases the worker pool.
// The trigger should not be used after calling Release.
func (t *Trigger) Release() {
	if t.pool != nil {
		t.pool.Release()
	}
}
