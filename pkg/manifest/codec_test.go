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

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deploymentYAML = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: workload
  namespace: default
spec:
  replicas: 3
`

const deploymentJSON = `{
  "apiVersion": "apps/v1",
  "kind": "Deployment",
  "metadata": {"name": "workload", "namespace": "default"},
  "spec": {"replicas": 3}
}`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadObject(t *testing.T) {
	testcases := map[string]struct {
		content string
		wantErr bool
	}{
		"yaml manifest":           {content: deploymentYAML},
		"json manifest":           {content: deploymentJSON},
		"empty file":              {content: "", wantErr: true},
		"whitespace only":         {content: "   \n\t\n", wantErr: true},
		"manifest without a kind": {content: "metadata:\n  name: workload\n", wantErr: true},
		"manifest without a name": {content: "kind: Deployment\napiVersion: apps/v1\n", wantErr: true},
		"malformed yaml":          {content: "kind: [unclosed\n", wantErr: true},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			obj, err := LoadObject(writeManifest(t, tc.content))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Deployment", obj.GetKind())
			assert.Equal(t, "workload", obj.GetName())
			assert.Equal(t, "default", obj.GetNamespace())
		})
	}
}

func TestLoadObjectMissingFile(t *testing.T) {
	_, err := LoadObject(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.Error(t, err)
}

func TestLoadObjectEmptyFileError(t *testing.T) {
	_, err := LoadObject(writeManifest(t, ""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}
