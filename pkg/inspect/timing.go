// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import "time"

// Timed runs op and returns its result together with the wall-clock
// duration of the call. The duration is reported whether or not op
// failed. Latency-sensitive callers wrap expensive operations such as
// Glob with it instead of keeping ambient timer state.
func Timed[T any](op func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := op()
	return v, time.Since(start), err
}
