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
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*stringFlagFunc)(nil)
var _ flagFunc = (*stringFlagFunc)(nil)
var _ pflag.Value = (*boolFlagFunc)(nil)
var _ flagFunc = (*boolFlagFunc)(nil)
var _ pflag.Value = (*durationFlagFunc)(nil)
var _ flagFunc = (*durationFlagFunc)(nil)

type flagFunc interface {
	initialize() error
}

type stringFlagFunc struct {
	valPtr         *string
	initializeFunc func() error
}

// initialize runs additional parsing function.
func (s *stringFlagFunc) initialize() error {
	return s.initializeFunc()
}

// String returns default string.
func (s *stringFlagFunc) String() string {
	return ""
}

// Set handles flag value setting.
func (s *stringFlagFunc) Set(val string) error {
	*s.valPtr = val
	return nil
}

// Type returns flag type.
func (s *stringFlagFunc) Type() string {
	return "string"
}

type boolFlagFunc struct {
	valPtr         *bool
	initializeFunc func() error
}

// initialize runs additional parsing function.
func (b *boolFlagFunc) initialize() error {
	return b.initializeFunc()
}

// String returns default string.
func (b *boolFlagFunc) String() string {
	return "false"
}

// Set handles flag value setting.
func (b *boolFlagFunc) Set(val string) error {
	bVal, err := strconv.ParseBool(val)
	if err != nil {
		return err
	}
	*b.valPtr = bVal
	return nil
}

// Type returns flag type.
func (b *boolFlagFunc) Type() string {
	return "bool"
}

type durationFlagFunc struct {
	valPtr         *time.Duration
	initializeFunc func() error
}

// initialize runs additional parsing function.
func (d *durationFlagFunc) initialize() error {
	return d.initializeFunc()
}

// String returns default string.
func (d *durationFlagFunc) String() string {
	return "0s"
}

// Set handles flag value setting.
func (d *durationFlagFunc) Set(val string) error {
	dVal, err := time.ParseDuration(val)
	if err != nil {
		return err
	}
	*d.valPtr = dVal
	return nil
}

// Type returns flag type.
func (d *durationFlagFunc) Type() string {
	return "duration"
}
