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
	"time"
)

// NextStep computes the replica count to request in the next cycle of a
// gradual scale operation. The increment is proportional to the fraction of
// the remaining time budget that the next cycle will consume, so the rate is
// recomputed every cycle from the work and time actually remaining. This
// corrects for rounding in earlier cycles and for cycles that overran their
// nominal interval.
//
// When the remaining budget does not exceed a single cycle interval, the
// target itself is returned, so the final step always lands exactly on the
// target regardless of accumulated rounding.
//
// The result never overshoots: it stays between current and target for
// scale-ups and scale-downs alike.
func NextStep(current, target int32, remaining, interval time.Duration) int32 {
	if remaining <= interval {
		return target
	}
	// Integer division truncates toward zero, for negative deltas too.
	step := int64(target-current) * int64(interval) / int64(remaining)
	return current + int32(step)
}
