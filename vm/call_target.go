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
	"fmt"
	"sync/atomic"

	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/values"
)

// CallTarget is an invocable unit. Argument 0 is the stack of the calling thread.
type CallTarget interface {
	Call(arguments []values.Value) values.Value
}

// CallTargetFunc is a function which is a call target.
type CallTargetFunc func(arguments []values.Value) values.Value

var _ CallTarget = CallTargetFunc(nil)

func (f CallTargetFunc) Call(arguments []values.Value) values.Value {
	return f(arguments)
}

// Stack is the per-thread context record, passed to every call as argument 0.
type Stack struct {
	depth uint64
	limit uint64
}

var _ values.Value = &Stack{}

func NewStack(limit uint64) *Stack {
	return &Stack{
		limit: limit,
	}
}

func (*Stack) IsValue() {}

func (s *Stack) String() string {
	return fmt.Sprintf("stack(depth %d)", s.depth)
}

func (s *Stack) Depth() uint64 {
	return s.depth
}

func (s *Stack) push() {
	if s.depth >= s.limit {
		panic(StackDepthLimitReachedError{
			Limit: s.limit,
		})
	}
	s.depth++
}

func (s *Stack) pop() {
	s.depth--
}

// ReturnBlockIndex is the successor "block" of a block which returns from the function.
const ReturnBlockIndex = -1

// BlockExecutor executes the instructions of the blocks of a function.
type BlockExecutor interface {
	// ExecuteBlock executes the block, including the phi assignments for the successor,
	// and returns the index of the successor block, or ReturnBlockIndex and the result.
	ExecuteBlock(invocation *Invocation, block *ir.InstructionBlock) (successor int, result values.Value)
}

// BlockExecutorFactory creates the block executor for a function.
type BlockExecutorFactory interface {
	CreateBlockExecutor(function *ir.FunctionDefinition, layout *frame.Layout, phis ir.Phis) BlockExecutor
}

// Invocation is the state of a single invocation of a converted function.
type Invocation struct {
	Context    *Context
	Function   *FunctionDescriptor
	Activation *frame.Activation
	Phis       ir.Phis
	// Stack is argument 0 of the invocation
	Stack values.Value
}

// Call calls the function the call site refers to.
func (i *Invocation) Call(site *CallSiteCache, arguments ...values.Value) values.Value {
	target := site.CallTarget(i.Activation.Mode)

	callArguments := make([]values.Value, 0, len(arguments)+1)
	callArguments = append(callArguments, i.Stack)
	callArguments = append(callArguments, arguments...)

	return target.Call(callArguments)
}

// IRCallTarget is the call target of a converted function.
type IRCallTarget struct {
	context    *Context
	descriptor *FunctionDescriptor
	function   *ir.FunctionDefinition
	layout     *frame.Layout
	phis       ir.Phis
	nullable   frame.NullableSlots
	arguments  *frame.ArgumentCopier
	executor   BlockExecutor
	callCount  atomic.Uint64
}

var _ CallTarget = &IRCallTarget{}

func (t *IRCallTarget) Layout() *frame.Layout {
	return t.layout
}

func (t *IRCallTarget) NullableSlots() frame.NullableSlots {
	return t.nullable
}

func (t *IRCallTarget) CallCount() uint64 {
	return t.callCount.Load()
}

func (t *IRCallTarget) executionMode(callCount uint64) frame.ExecutionMode {
	threshold := t.context.config.OptimizationThreshold
	if threshold > 0 && callCount > threshold {
		return frame.ExecutionModeOptimized
	}
	return frame.ExecutionModeInterpreted
}

func (t *IRCallTarget) Call(arguments []values.Value) values.Value {
	var stack values.Value
	if len(arguments) > 0 {
		stack = arguments[0]
	}

	if stack, ok := stack.(*Stack); ok {
		stack.push()
		defer stack.pop()
	}

	callCount := t.callCount.Add(1)

	activation := frame.NewActivation(t.layout, t.executionMode(callCount))
	t.arguments.CopyArguments(activation, arguments)

	invocation := &Invocation{
		Context:    t.context,
		Function:   t.descriptor,
		Activation: activation,
		Phis:       t.phis,
		Stack:      stack,
	}

	blocks := t.function.Blocks
	index := 0
	for {
		activation.ClearSlots(slotsAt(t.nullable.Before, index))

		successor, result := t.executor.ExecuteBlock(invocation, blocks[index])

		activation.ClearSlots(slotsAt(t.nullable.After, index))

		if successor == ReturnBlockIndex {
			return result
		}
		index = successor
	}
}

func slotsAt(slots [][]*frame.Slot, index int) []*frame.Slot {
	if index >= len(slots) {
		return nil
	}
	return slots[index]
}
