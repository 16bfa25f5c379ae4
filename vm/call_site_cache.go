/*
 * IR Engine - execution core for a low-level typed intermediate representation
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package vm

import (
	"sync/atomic"

	"github.com/onflow/irengine/frame"
)

type callSiteEntry struct {
	callTarget CallTarget
	generation uint64
}

// CallSiteCache caches the call target of a function at a call site.
// The cached call target is only used while the binding of the function is unchanged.
type CallSiteCache struct {
	descriptor      *FunctionDescriptor
	entry           atomic.Pointer[callSiteEntry]
	deoptimizations atomic.Uint64
}

func NewCallSiteCache(descriptor *FunctionDescriptor) *CallSiteCache {
	return &CallSiteCache{
		descriptor: descriptor,
	}
}

func (c *CallSiteCache) Descriptor() *FunctionDescriptor {
	return c.descriptor
}

// Deoptimizations returns how often optimized code had to fall back
// to the interpreter to convert the callee.
func (c *CallSiteCache) Deoptimizations() uint64 {
	return c.deoptimizations.Load()
}

// CallTarget returns the call target for a caller executing in the given mode.
func (c *CallSiteCache) CallTarget(mode frame.ExecutionMode) CallTarget {
	descriptor := c.descriptor

	entry := c.entry.Load()
	if entry != nil && entry.generation == descriptor.Generation() {
		return entry.callTarget
	}

	descriptor.Resolve()

	if mode == frame.ExecutionModeOptimized && descriptor.needsConversion() {
		c.deoptimizations.Add(1)
		mode = frame.ExecutionModeInterpreted
	}

	callTarget, generation := descriptor.callTarget(mode)
	c.entry.Store(&callSiteEntry{
		callTarget: callTarget,
		generation: generation,
	})
	return callTarget
}
