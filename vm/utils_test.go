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
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var i64BinaryFunctionType = types.NewFunctionType(types.I64Type, false, types.I64Type, types.I64Type)

// newAddDefinition returns the definition of `i64 name(i64 a, i64 b) { c = add a, b; ret c }`
func newAddDefinition(name string) *ir.FunctionDefinition {
	return &ir.FunctionDefinition{
		Name: name,
		Type: i64BinaryFunctionType,
		Parameters: []*ir.FunctionParameter{
			{Name: "a", Type: types.I64Type},
			{Name: "b", Type: types.I64Type},
		},
		Blocks: []*ir.InstructionBlock{
			{
				Index: 0,
				Name:  "entry",
				Instructions: []ir.Instruction{
					&ir.ValueInstruction{
						Name:     "c",
						Type:     types.I64Type,
						Opcode:   "add",
						Operands: []string{"a", "b"},
					},
					&ir.ControlInstruction{
						Opcode:   "ret",
						Operands: []string{"c"},
					},
				},
			},
		},
	}
}

// newCallDefinition returns the definition of `i64 name(i64 a) { r = call callee(a, a); ret r }`
func newCallDefinition(name string, callee string) *ir.FunctionDefinition {
	return &ir.FunctionDefinition{
		Name: name,
		Type: types.NewFunctionType(types.I64Type, false, types.I64Type),
		Parameters: []*ir.FunctionParameter{
			{Name: "a", Type: types.I64Type},
		},
		Blocks: []*ir.InstructionBlock{
			{
				Index: 0,
				Name:  "entry",
				Instructions: []ir.Instruction{
					&ir.ValueInstruction{
						Name:     "r",
						Type:     types.I64Type,
						Opcode:   "call",
						Operands: []string{callee, "a", "a"},
					},
					&ir.ControlInstruction{
						Opcode:   "ret",
						Operands: []string{"r"},
					},
				},
			},
		},
	}
}

// testExecutorFactory creates executors for a tiny instruction set:
// `add`, `call`, `ret`, and `br`.
type testExecutorFactory struct {
	created atomic.Int64
	mu      sync.Mutex
	modes   []frame.ExecutionMode
}

var _ BlockExecutorFactory = &testExecutorFactory{}

func (f *testExecutorFactory) CreateBlockExecutor(
	function *ir.FunctionDefinition,
	layout *frame.Layout,
	_ ir.Phis,
) BlockExecutor {
	f.created.Add(1)
	return &testExecutor{
		factory:   f,
		layout:    layout,
		callSites: map[*ir.ValueInstruction]*CallSiteCache{},
	}
}

func (f *testExecutorFactory) recordMode(mode frame.ExecutionMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes = append(f.modes, mode)
}

func (f *testExecutorFactory) Modes() []frame.ExecutionMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]frame.ExecutionMode(nil), f.modes...)
}

type testExecutor struct {
	factory   *testExecutorFactory
	layout    *frame.Layout
	mu        sync.Mutex
	callSites map[*ir.ValueInstruction]*CallSiteCache
}

var _ BlockExecutor = &testExecutor{}

func (e *testExecutor) callSite(context *Context, instruction *ir.ValueInstruction) *CallSiteCache {
	e.mu.Lock()
	defer e.mu.Unlock()

	site, ok := e.callSites[instruction]
	if !ok {
		descriptor := context.FunctionDescriptor(instruction.Operands[0], nil)
		site = NewCallSiteCache(descriptor)
		e.callSites[instruction] = site
	}
	return site
}

func (e *testExecutor) ExecuteBlock(invocation *Invocation, block *ir.InstructionBlock) (int, values.Value) {
	activation := invocation.Activation

	if block.Index == 0 {
		e.factory.recordMode(activation.Mode)
	}

	read := func(name string) values.Value {
		return activation.Read(e.layout.FindSlot(name))
	}

	for _, instruction := range block.Instructions {
		switch instruction := instruction.(type) {
		case *ir.ValueInstruction:
			slot := e.layout.FindSlot(instruction.Name)

			switch instruction.Opcode {
			case "add":
				left := read(instruction.Operands[0]).(values.I64)
				right := read(instruction.Operands[1]).(values.I64)
				activation.Write(slot, left+right)

			case "call":
				site := e.callSite(invocation.Context, instruction)
				arguments := make([]values.Value, 0, len(instruction.Operands)-1)
				for _, operand := range instruction.Operands[1:] {
					arguments = append(arguments, read(operand))
				}
				activation.Write(slot, invocation.Call(site, arguments...))

			default:
				panic(errors.NewUnexpectedError("unsupported opcode: %s", instruction.Opcode))
			}

		case *ir.ControlInstruction:
			switch instruction.Opcode {
			case "ret":
				return ReturnBlockIndex, read(instruction.Operands[0])
			case "br":
				return instruction.Successors[0].Index, nil
			default:
				panic(errors.NewUnexpectedError("unsupported opcode: %s", instruction.Opcode))
			}
		}
	}

	panic(errors.NewUnexpectedError("block %s has no terminator", block.Name))
}

type testNativeSymbol struct {
	address uint64
	call    func(arguments []values.Value) values.Value
}

var _ NativeSymbol = &testNativeSymbol{}

func (s *testNativeSymbol) Address() uint64 {
	return s.address
}

func (s *testNativeSymbol) Call(arguments []values.Value) values.Value {
	return s.call(arguments)
}

type testNativeExtension struct {
	mu       sync.Mutex
	symbols  map[string]NativeLookupResult
	wrappers map[uint64]NativeSymbol
	lookups  []string
}

var _ NativeExtension = &testNativeExtension{}

func newTestNativeExtension() *testNativeExtension {
	return &testNativeExtension{
		symbols:  map[string]NativeLookupResult{},
		wrappers: map[uint64]NativeSymbol{},
	}
}

func (e *testNativeExtension) addSymbol(library string, name string, symbol NativeSymbol) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.symbols[name] = NativeLookupResult{
		Library: library,
		Symbol:  symbol,
	}
}

func (e *testNativeExtension) LookupNativeFunction(name string) (NativeLookupResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lookups = append(e.lookups, name)
	result, ok := e.symbols[name]
	return result, ok
}

func (e *testNativeExtension) CreateNativeWrapper(descriptor *FunctionDescriptor) (NativeSymbol, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	wrapper, ok := e.wrappers[descriptor.ID()]
	return wrapper, ok
}

// testReentrantNativeExtension inspects the descriptor while creating its wrapper
type testReentrantNativeExtension struct {
	*testNativeExtension
	observed []NativeSymbol
}

var _ NativeExtension = &testReentrantNativeExtension{}

func (e *testReentrantNativeExtension) CreateNativeWrapper(descriptor *FunctionDescriptor) (NativeSymbol, bool) {
	e.observed = append(e.observed, descriptor.NativeWrapper())
	return &testNativeSymbol{address: 0x7100}, true
}

type testIntrinsicProvider struct {
	mu        sync.Mutex
	generated map[string]int
	names     map[string]IntrinsicFactory
}

var _ IntrinsicProvider = &testIntrinsicProvider{}

func newTestIntrinsicProvider(names ...string) *testIntrinsicProvider {
	provider := &testIntrinsicProvider{
		generated: map[string]int{},
		names:     map[string]IntrinsicFactory{},
	}
	for _, name := range names {
		provider.names[name] = IntrinsicFactory{
			ForceInline: true,
			Generate:    provider.generate,
		}
	}
	return provider
}

func (p *testIntrinsicProvider) generate(name string, functionType *types.FunctionType) CallTarget {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generated[name+" "+functionType.String()]++

	return CallTargetFunc(func(arguments []values.Value) values.Value {
		return values.I64(len(arguments) - 1)
	})
}

func (p *testIntrinsicProvider) generatedCount(name string, functionType *types.FunctionType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generated[name+" "+functionType.String()]
}

func (p *testIntrinsicProvider) LookupIntrinsic(name string) (IntrinsicFactory, bool) {
	factory, ok := p.names[name]
	return factory, ok
}

func newTestContext(configure func(config *Config)) (*Context, *testExecutorFactory) {
	factory := &testExecutorFactory{}
	config := NewConfig().WithBlockExecutorFactory(factory)
	if configure != nil {
		configure(config)
	}
	return NewContext(config), factory
}
