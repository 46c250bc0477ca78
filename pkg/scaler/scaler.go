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

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clientset "k8s.io/client-go/kubernetes"
)

// Job describes a single scale operation. It is built from CLI input once
// and never modified afterwards.
type Job struct {
	// Name and Namespace identify the deployment to scale.
	Name      string
	Namespace string
	// TargetReplicas is the desired final replica count.
	TargetReplicas int32
	// Duration is the total time budget for a gradual scale.
	Duration time.Duration
	// CycleInterval is the nominal time between scale steps.
	CycleInterval time.Duration
	// WaitForAvailable makes each scale step block until the cluster
	// reports the requested count as available.
	WaitForAvailable bool
}

// Validate checks job parameters for a gradual scale operation.
func (j *Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("deployment name must not be empty")
	}
	if j.TargetReplicas < 0 {
		return fmt.Errorf("target replica count must not be negative, got %d", j.TargetReplicas)
	}
	if j.Duration <= 0 {
		return fmt.Errorf("scale duration must be positive, got %v", j.Duration)
	}
	if j.CycleInterval <= 0 {
		return fmt.Errorf("cycle interval must be positive, got %v", j.CycleInterval)
	}
	return nil
}

// Observation is a point-in-time snapshot of a deployment's replica counts.
// It is re-read from the cluster every time it is needed, never cached.
type Observation struct {
	Available int32
	Desired   int32
}

// ReplicaScaler abstracts the narrow slice of the orchestrator API that the
// scaling loop needs: read the observed available replica count and issue a
// new desired count. Errors are returned as client-go API errors, so callers
// can classify them with apierrors predicates.
type ReplicaScaler interface {
	GetAvailableReplicas(ctx context.Context, namespace, name string) (int32, error)
	SetDesiredReplicas(ctx context.Context, namespace, name string, replicas int32) error
}

type deploymentScaler struct {
	client clientset.Interface
}

// NewDeploymentScaler returns a ReplicaScaler backed by the apps/v1
// deployment API of the given clientset.
func NewDeploymentScaler(c clientset.Interface) ReplicaScaler {
	return &deploymentScaler{client: c}
}

func (s *deploymentScaler) GetAvailableReplicas(ctx context.Context, namespace, name string) (int32, error) {
	deployment, err := s.client.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return 0, err
	}
	return deployment.Status.AvailableReplicas, nil
}

// SetDesiredReplicas issues a single update of the deployment's desired
// replica count. It deliberately performs no retries: a failed mutation must
// surface to the caller so the scaling loop can abort.
func (s *deploymentScaler) SetDesiredReplicas(ctx context.Context, namespace, name string, replicas int32) error {
	deployment, err := s.client.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return err
	}
	deployment.Spec.Replicas = &replicas
	_, err = s.client.AppsV1().Deployments(namespace).Update(ctx, deployment, metav1.UpdateOptions{})
	return err
}

// Observe reads the deployment's current desired and available counts.
func Observe(ctx context.Context, c clientset.Interface, namespace, name string) (*Observation, error) {
	deployment, err := c.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}
	observation := &Observation{Available: deployment.Status.AvailableReplicas}
	if deployment.Spec.Replicas != nil {
		observation.Desired = *deployment.Spec.Replicas
	}
	return observation, nil
}
