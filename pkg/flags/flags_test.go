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

package flags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvString(t *testing.T) {
	var s string
	require.NoError(t, parseEnvString(&s, "SCALECTL_TEST_KUBECONFIG", "/default/path"))
	assert.Equal(t, "/default/path", s)

	t.Setenv("SCALECTL_TEST_KUBECONFIG", "/env/path")
	require.NoError(t, parseEnvString(&s, "SCALECTL_TEST_KUBECONFIG", "/default/path"))
	assert.Equal(t, "/env/path", s)
}

func TestParseEnvBool(t *testing.T) {
	testcases := map[string]struct {
		envValue string
		want     bool
		wantErr  bool
	}{
		"true value":      {envValue: "true", want: true},
		"false value":     {envValue: "false", want: false},
		"numeric true":    {envValue: "1", want: true},
		"malformed value": {envValue: "yes please", wantErr: true},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SCALECTL_TEST_WAIT", tc.envValue)
			var b bool
			err := parseEnvBool(&b, "SCALECTL_TEST_WAIT", false)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
		})
	}
}

func TestParseEnvBoolDefault(t *testing.T) {
	var b bool
	require.NoError(t, parseEnvBool(&b, "SCALECTL_TEST_WAIT_UNSET", true))
	assert.True(t, b)
}

func TestParseEnvDuration(t *testing.T) {
	testcases := map[string]struct {
		envValue string
		want     time.Duration
		wantErr  bool
	}{
		"seconds":         {envValue: "30s", want: 30 * time.Second},
		"minutes":         {envValue: "2m", want: 2 * time.Minute},
		"zero":            {envValue: "0s", want: 0},
		"malformed value": {envValue: "soon", wantErr: true},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SCALECTL_TEST_WAIT_TIMEOUT", tc.envValue)
			var d time.Duration
			err := parseEnvDuration(&d, "SCALECTL_TEST_WAIT_TIMEOUT", 5*time.Second)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestParseEnvDurationDefault(t *testing.T) {
	var d time.Duration
	require.NoError(t, parseEnvDuration(&d, "SCALECTL_TEST_WAIT_TIMEOUT_UNSET", 5*time.Second))
	assert.Equal(t, 5*time.Second, d)
}

func TestDurationFlagFuncSet(t *testing.T) {
	var d time.Duration
	f := &durationFlagFunc{valPtr: &d}
	require.NoError(t, f.Set("90s"))
	assert.Equal(t, 90*time.Second, d)
	assert.Equal(t, "duration", f.Type())
	assert.Error(t, f.Set("later"))
}
