// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"time"
)

// Limiter paces the coordinator between chunks so a batch run cannot
// flood the embedding provider.
type Limiter interface {
	// Wait blocks until the next chunk may start, or until ctx is done.
	Wait(ctx context.Context) error
}

// FixedDelayLimiter waits a constant duration between chunks.
type FixedDelayLimiter struct {
	delay time.Duration
}

var _ Limiter = (*FixedDelayLimiter)(nil)

// NewFixedDelayLimiter creates a limiter with the given inter-chunk delay.
func NewFixedDelayLimiter(delay time.Duration) *FixedDelayLimiter {
	return &FixedDelayLimiter{delay: delay}
}

func (l *FixedDelayLimiter) Wait(ctx context.Context) error {
	if l.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoopLimiter never waits. Used in tests so runs finish without
// wall-clock delays.
type NoopLimiter struct{}

var _ Limiter = (*NoopLimiter)(nil)

func (l *NoopLimiter) Wait(ctx context.Context) error {
	return ctx.Err()
}
