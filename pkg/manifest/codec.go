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
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// ErrEmptyFile indicates that the manifest file was empty.
// Useful to distinguish whether the manifest was empty or malformed.
var ErrEmptyFile = errors.New("empty manifest file")

// LoadObject reads a YAML or JSON manifest file and decodes it into an
// unstructured object.
func LoadObject(path string) (*unstructured.Unstructured, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	obj, err := convertToObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return obj, nil
}

// convertToObject converts array of bytes into unstructured object.
func convertToObject(raw []byte) (*unstructured.Unstructured, error) {
	if isEmpty(raw) {
		return nil, ErrEmptyFile
	}
	obj := &unstructured.Unstructured{}
	if err := yaml.NewYAMLOrJSONDecoder(bytes.NewBuffer(raw), 4096).Decode(obj); err != nil {
		return nil, fmt.Errorf("unmarshaling error: %v", err)
	}
	if obj.GetKind() == "" {
		return nil, fmt.Errorf("manifest has no kind")
	}
	if obj.GetName() == "" {
		return nil, fmt.Errorf("manifest has no name")
	}
	return obj, nil
}

func isEmpty(raw []byte) bool {
	return strings.TrimSpace(string(raw)) == ""
}
