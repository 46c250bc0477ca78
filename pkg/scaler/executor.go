/*
Copyright 2025 The Kubernetes Authors.

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

package scaler

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"
)

const (
	// DefaultCycleInterval is the nominal time between gradual scale steps.
	DefaultCycleInterval = 5 * time.Second
	// DefaultPollInterval is the time between availability checks while
	// waiting for a requested replica count to be reported available.
	DefaultPollInterval = 2 * time.Second
)

// Executor drives scale operations against a ReplicaScaler. It owns all
// timing and all side effects; the step computation itself is delegated to
// NextStep.
type Executor struct {
	scaler       ReplicaScaler
	clock        clock.Clock
	pollInterval time.Duration
	// waitTimeout bounds each availability wait. Zero means wait forever,
	// which is the documented default: a step that never becomes available
	// blocks the operation indefinitely rather than being silently skipped.
	waitTimeout time.Duration
}

// NewExecutor creates an executor using the real system clock.
func NewExecutor(s ReplicaScaler, pollInterval, waitTimeout time.Duration) *Executor {
	return newExecutor(s, clock.RealClock{}, pollInterval, waitTimeout)
}

func newExecutor(s ReplicaScaler, c clock.Clock, pollInterval, waitTimeout time.Duration) *Executor {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Executor{scaler: s, clock: c, pollInterval: pollInterval, waitTimeout: waitTimeout}
}

// Run ramps the deployment named by job from its observed available replica
// count to job.TargetReplicas within job.Duration, issuing one scale command
// per cycle. It blocks until the ramp completes or fails.
//
// The first step is anchored on the observed available count, so the ramp
// starts from reality rather than from a possibly stale desired value. Every
// later step advances from the count issued in the previous cycle, not from
// a fresh observation; re-reading mid-ramp would make the planner chase the
// cluster's convergence lag instead of the deadline.
func (e *Executor) Run(ctx context.Context, job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	current, err := e.scaler.GetAvailableReplicas(ctx, job.Namespace, job.Name)
	if err != nil {
		return fmt.Errorf("reading available replicas of %s/%s: %w", job.Namespace, job.Name, err)
	}
	if current == job.TargetReplicas {
		klog.V(2).Infof("%s/%s already has %d available replicas, nothing to do", job.Namespace, job.Name, current)
		return nil
	}

	deadline := e.clock.Now().Add(job.Duration)
	klog.V(2).Infof("scaling %s/%s from %d to %d replicas over %v", job.Namespace, job.Name, current, job.TargetReplicas, job.Duration)
	for {
		remaining := deadline.Sub(e.clock.Now())
		next := NextStep(current, job.TargetReplicas, remaining, job.CycleInterval)
		if err := e.scaler.SetDesiredReplicas(ctx, job.Namespace, job.Name, next); err != nil {
			return fmt.Errorf("scaling %s/%s to %d replicas: %w", job.Namespace, job.Name, next, err)
		}
		current = next
		klog.V(2).Infof("%s/%s: desired replicas set to %d, %v of budget left", job.Namespace, job.Name, next, remaining)

		if job.WaitForAvailable {
			if err := e.WaitForReplicas(ctx, job.Namespace, job.Name, next); err != nil {
				return err
			}
		}
		if current == job.TargetReplicas {
			klog.V(2).Infof("%s/%s: reached target of %d replicas", job.Namespace, job.Name, current)
			return nil
		}

		sleep := job.CycleInterval
		if left := deadline.Sub(e.clock.Now()); left < sleep {
			sleep = left
		}
		if sleep > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-e.clock.After(sleep):
			}
		}
	}
}

// ScaleNow sets the desired replica count in a single step and, if the job
// requests it, waits for the count to be reported available.
func (e *Executor) ScaleNow(ctx context.Context, job *Job) error {
	if job.Name == "" {
		return fmt.Errorf("deployment name must not be empty")
	}
	if job.TargetReplicas < 0 {
		return fmt.Errorf("target replica count must not be negative, got %d", job.TargetReplicas)
	}
	if err := e.scaler.SetDesiredReplicas(ctx, job.Namespace, job.Name, job.TargetReplicas); err != nil {
		return fmt.Errorf("scaling %s/%s to %d replicas: %w", job.Namespace, job.Name, job.TargetReplicas, err)
	}
	if !job.WaitForAvailable {
		return nil
	}
	return e.WaitForReplicas(ctx, job.Namespace, job.Name, job.TargetReplicas)
}

// WaitForReplicas polls the available replica count of namespace/name until
// it equals count. Read errors are logged and retried at the poll interval:
// transient unreadiness, including NotFound shortly after creation, is
// expected while a rollout is in progress. Only context cancellation or an
// exceeded wait timeout end the wait early.
//
// This is the single availability barrier in the codebase; both the gradual
// loop and the immediate scale path go through it.
func (e *Executor) WaitForReplicas(ctx context.Context, namespace, name string, count int32) error {
	var deadline time.Time
	if e.waitTimeout > 0 {
		deadline = e.clock.Now().Add(e.waitTimeout)
	}
	for {
		available, err := e.scaler.GetAvailableReplicas(ctx, namespace, name)
		if err != nil {
			klog.V(4).Infof("%s/%s: reading available replicas failed, retrying: %v", namespace, name, err)
		} else if available == count {
			return nil
		} else {
			klog.V(4).Infof("%s/%s: %d/%d replicas available", namespace, name, available, count)
		}
		if !deadline.IsZero() && !e.clock.Now().Before(deadline) {
			return fmt.Errorf("timed out after %v waiting for %s/%s to have %d available replicas", e.waitTimeout, namespace, name, count)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.clock.After(e.pollInterval):
		}
	}
}
