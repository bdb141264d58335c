// Copyright 2026 CrunchTools
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

package server

import (
	"golang.org/x/time/rate"
)

// defaultCallsPerMinute bounds the sustained tool-call rate. A runaway agent
// loop hits the limiter before it hits GitLab's own rate limits.
const defaultCallsPerMinute = 120

// callLimiter is a token bucket over all tool calls. The bucket starts full,
// so a burst up to the per-minute quota is allowed before sustained-rate
// enforcement kicks in.
type callLimiter struct {
	limiter *rate.Limiter
}

// newCallLimiter creates a limiter allowing callsPerMinute sustained calls.
func newCallLimiter(callsPerMinute int) *callLimiter {
	return &callLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(callsPerMinute)/60.0), callsPerMinute),
	}
}

// Allow reports whether one more tool call may proceed now. It never blocks;
// a denied call surfaces to the agent as a rate-limit tool error.
func (cl *callLimiter) Allow() bool {
	return cl.limiter.Allow()
}
