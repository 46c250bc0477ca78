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

package client

import (
	"errors"
	"fmt"
	"testing"

	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestIsRetryableAPIError(t *testing.T) {
	testcases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "server timeout error",
			err:  apierrs.NewServerTimeout(schema.GroupResource{Resource: "deployments"}, "get", 5),
			want: true,
		},
		{
			name: "too many requests error",
			err:  apierrs.NewTooManyRequests("slow down", 5),
			want: true,
		},
		{
			name: "unauthorized error",
			err:  apierrs.NewUnauthorized("token expired"),
			want: true,
		},
		{
			name: "not-found error",
			err:  apierrs.NewNotFound(schema.GroupResource{Resource: "deployments"}, "workload"),
			want: false,
		},
		{
			name: "forbidden error",
			err:  apierrs.NewForbidden(schema.GroupResource{Resource: "deployments"}, "workload", fmt.Errorf("no patch access")),
			want: false,
		},
		{
			name: "non-api error",
			err:  fmt.Errorf("XXX"),
			want: false,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableAPIError(tc.err); tc.want != got {
				t.Errorf("want: %v, got: %v", tc.want, got)
			}
		})
	}
}

func TestIsRetryableNetError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "http2: client connection lost",
			err:  errors.New("http2: client connection lost"),
			want: true,
		},
		{
			name: "http2: some other error",
			err:  errors.New("http2: some other error"),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableNetError(tt.err); tt.want != got {
				t.Errorf("want: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestRetryFunctionAllowsMatchingErrors(t *testing.T) {
	calls := 0
	f := RetryFunction(func() error {
		calls++
		return apierrs.NewAlreadyExists(schema.GroupResource{Resource: "deployments"}, "workload")
	}, Allow(apierrs.IsAlreadyExists))
	if err := RetryWithExponentialBackOff(f); err != nil {
		t.Errorf("allowed error should be ignored, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("want exactly 1 call, got: %d", calls)
	}
}

func TestRetryFunctionSurfacesOtherErrors(t *testing.T) {
	forbidden := apierrs.NewForbidden(schema.GroupResource{Resource: "deployments"}, "workload", fmt.Errorf("no access"))
	f := RetryFunction(func() error { return forbidden })
	err := RetryWithExponentialBackOff(f)
	if !apierrs.IsForbidden(err) {
		t.Errorf("want forbidden error, got: %v", err)
	}
}
