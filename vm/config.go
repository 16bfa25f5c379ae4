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
	"math"

	"github.com/rs/zerolog"

	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
)

// Config contains the configuration of an execution context.
// It is safe to be re-used across contexts, i.e. it holds no state of a single execution.
type Config struct {
	Tracer
	Logger zerolog.Logger
	// NativeExtension provides access to native libraries. Optional.
	NativeExtension NativeExtension
	// IntrinsicProvider provides intrinsic implementations of functions. Optional.
	IntrinsicProvider IntrinsicProvider
	// BlockExecutorFactory creates the executors of the blocks of converted functions.
	BlockExecutorFactory BlockExecutorFactory
	// LivenessAnalysis determines which slots are cleared at block boundaries. Optional.
	LivenessAnalysis frame.LivenessAnalysis
	// DebugInfoHandler determines which slots must never be cleared. Optional.
	DebugInfoHandler DebugInfoHandler
	// StructCopier copies structures passed by value. Optional.
	StructCopier frame.StructCopier
	// OptimizationThreshold is the number of calls after which a function
	// is executed in optimized mode. Zero disables optimized mode.
	OptimizationThreshold uint64
	// StackDepthLimit is the maximum depth of the call stack
	StackDepthLimit uint64
}

// DebugInfoHandler provides the slots which hold source-level variables,
// which must stay inspectable for the whole invocation.
type DebugInfoHandler interface {
	NotNullableSlots(function *ir.FunctionDefinition, layout *frame.Layout) []*frame.Slot
}

func NewConfig() *Config {
	return &Config{
		Logger:          zerolog.Nop(),
		StackDepthLimit: math.MaxInt,
	}
}

func (c *Config) WithLogger(logger zerolog.Logger) *Config {
	c.Logger = logger
	return c
}

func (c *Config) WithTracer(tracer Tracer) *Config {
	c.Tracer = tracer
	return c
}

func (c *Config) WithNativeExtension(extension NativeExtension) *Config {
	c.NativeExtension = extension
	return c
}

func (c *Config) WithIntrinsicProvider(provider IntrinsicProvider) *Config {
	c.IntrinsicProvider = provider
	return c
}

func (c *Config) WithBlockExecutorFactory(factory BlockExecutorFactory) *Config {
	c.BlockExecutorFactory = factory
	return c
}

func (c *Config) WithLivenessAnalysis(analysis frame.LivenessAnalysis) *Config {
	c.LivenessAnalysis = analysis
	return c
}

func (c *Config) WithDebugInfoHandler(handler DebugInfoHandler) *Config {
	c.DebugInfoHandler = handler
	return c
}

func (c *Config) WithStructCopier(copier frame.StructCopier) *Config {
	c.StructCopier = copier
	return c
}

func (c *Config) WithOptimizationThreshold(threshold uint64) *Config {
	c.OptimizationThreshold = threshold
	return c
}

func (c *Config) WithStackDepthLimit(limit uint64) *Config {
	c.StackDepthLimit = limit
	return c
}
