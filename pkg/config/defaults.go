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

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults holds tool-wide settings that can be overridden by an optional
// config file. Flags take precedence over the file.
type Defaults struct {
	// CycleInterval is the nominal time between gradual scale steps.
	CycleInterval time.Duration `mapstructure:"cycleInterval"`
	// PollInterval is the time between availability checks.
	PollInterval time.Duration `mapstructure:"pollInterval"`
	// WaitTimeout bounds each availability wait; zero waits forever.
	WaitTimeout time.Duration `mapstructure:"waitTimeout"`
	// ClientQPS and ClientBurst are client-side rate limits.
	ClientQPS   float32 `mapstructure:"clientQPS"`
	ClientBurst int     `mapstructure:"clientBurst"`
}

// ReadDefaults reads settings from the config file at the given path. Empty
// path returns built-in defaults.
func ReadDefaults(path string) (*Defaults, error) {
	v := viper.New()
	v.SetDefault("cycleInterval", 5*time.Second)
	v.SetDefault("pollInterval", 2*time.Second)
	v.SetDefault("waitTimeout", time.Duration(0))
	v.SetDefault("clientQPS", 50)
	v.SetDefault("clientBurst", 100)

	if path != "" {
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		v.SetConfigName(strings.TrimSuffix(base, ext))
		v.AddConfigPath(filepath.Dir(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %v", err)
		}
	}
	var defaults Defaults
	if err := v.Unmarshal(&defaults); err != nil {
		return nil, fmt.Errorf("unmarshaling failed: %v", err)
	}
	return &defaults, nil
}
