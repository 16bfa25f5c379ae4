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
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
)

// LazyConverter converts the IR body of a function into a call target,
// when the function is called for the first time.
type LazyConverter struct {
	context    *Context
	definition *ir.FunctionDefinition
}

func NewLazyConverter(context *Context, definition *ir.FunctionDefinition) *LazyConverter {
	return &LazyConverter{
		context:    context,
		definition: definition,
	}
}

func (c *LazyConverter) Definition() *ir.FunctionDefinition {
	return c.definition
}

// Convert creates the call target of the function.
// Conversion is not synchronized, the caller must ensure it happens at most once.
func (c *LazyConverter) Convert(descriptor *FunctionDescriptor) *IRCallTarget {
	context := c.context
	config := context.config
	definition := c.definition

	var startTime time.Time
	if config.enabled() {
		startTime = time.Now()
	}

	factory := config.BlockExecutorFactory
	if factory == nil {
		panic(errors.NewUnexpectedError("missing block executor factory"))
	}

	phis := ir.CollectPhis(definition)

	layout := frame.NewLayout(definition)

	nullable := c.nullableSlots(layout, phis)

	arguments := frame.NewArgumentCopier(definition, layout, config.StructCopier)

	executor := factory.CreateBlockExecutor(definition, layout, phis)

	callTarget := &IRCallTarget{
		context:    context,
		descriptor: descriptor,
		function:   definition,
		layout:     layout,
		phis:       phis,
		nullable:   nullable,
		arguments:  arguments,
		executor:   executor,
	}

	if config.enabled() {
		config.reportConvertTrace(
			context,
			definition.Name,
			layout.Size(),
			len(definition.Blocks),
			time.Since(startTime),
		)
	}

	config.Logger.Debug().
		Str("function", definition.Name).
		Int("slots", layout.Size()).
		Int("blocks", len(definition.Blocks)).
		Msg("converted function")

	return callTarget
}

func (c *LazyConverter) nullableSlots(layout *frame.Layout, phis ir.Phis) frame.NullableSlots {
	config := c.context.config
	definition := c.definition

	analysis := config.LivenessAnalysis
	if analysis == nil {
		return frame.NullableSlots{}
	}

	liveness := analysis.Analyze(definition, layout, phis)
	if liveness == nil {
		return frame.NullableSlots{}
	}

	var notNullable *bitset.BitSet
	if config.DebugInfoHandler != nil {
		slots := config.DebugInfoHandler.NotNullableSlots(definition, layout)
		if len(slots) > 0 {
			notNullable = frame.NewSlotSet(slots...)
		}
	}

	return layout.NullableSlots(liveness, notNullable)
}
