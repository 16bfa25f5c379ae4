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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
	. "github.com/onflow/irengine/test_utils/common_utils"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

func TestFunctionDescriptor_NullFunction(t *testing.T) {

	t.Parallel()

	context, _ := newTestContext(nil)

	null := context.NullFunction()

	assert.Equal(t, uint64(NullFunctionID), null.ID())
	assert.Equal(t, "function@0 (anonymous)", null.String())
	assert.True(t, null.IsDefined())
	assert.Equal(t, FunctionKindNull, null.Resolve().Kind())

	assert.True(t, null.IsPointer())
	pointer, err := null.AsPointer()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pointer)
	assert.Equal(t, values.NullPointer, null.ToNative())

	descriptor, ok := context.FunctionDescriptorForPointer(0)
	require.True(t, ok)
	assert.Same(t, null, descriptor)

	_, err = context.Invoke(null)
	RequireError(t, err)
	require.ErrorAs(t, err, &NullFunctionCallError{})

	err = RecoverError(func() {
		null.Define(&NativeFunction{}, "")
	})
	require.ErrorAs(t, err, &DoubleDefinitionError{})
}

func TestFunctionDescriptor_String(t *testing.T) {

	t.Parallel()

	context, _ := newTestContext(nil)

	named := context.FunctionDescriptor("main", i64BinaryFunctionType)
	anonymous := context.FunctionDescriptor("", i64BinaryFunctionType)

	assert.Equal(t, "function@1 'main'", named.String())
	assert.Equal(t, "function@2 (anonymous)", anonymous.String())

	assert.Same(t, named, context.FunctionDescriptor("main", nil))
	assert.NotSame(t, anonymous, context.FunctionDescriptor("", nil))

	assert.Equal(t, -1, named.Compare(anonymous))
	assert.Equal(t, 1, anonymous.Compare(named))
	assert.Equal(t, 0, named.Compare(named))

	byID, ok := context.FunctionDescriptorByID(1)
	require.True(t, ok)
	assert.Same(t, named, byID)

	_, ok = context.FunctionDescriptorByID(42)
	assert.False(t, ok)
}

func TestFunctionDescriptor_Define(t *testing.T) {

	t.Parallel()

	t.Run("define once", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.FunctionDescriptor("f", i64BinaryFunctionType)
		assert.False(t, descriptor.IsDefined())
		assert.Equal(t, uint64(0), descriptor.Generation())

		symbol := &testNativeSymbol{address: 0x1000}
		descriptor.Define(&NativeFunction{Symbol: symbol}, "libf")

		assert.True(t, descriptor.IsDefined())
		assert.True(t, descriptor.IsNativeFunction())
		assert.Equal(t, "libf", descriptor.Library())
		assert.Equal(t, uint64(1), descriptor.Generation())
		assert.Same(t, symbol, descriptor.NativeFunction())

		err := RecoverError(func() {
			descriptor.Define(&NativeFunction{Symbol: symbol}, "libf")
		})
		RequireError(t, err)
		assert.True(t, errors.IsInternalError(err))
		assert.Equal(t,
			DoubleDefinitionError{
				FunctionName: "f",
				Existing:     FunctionKindNative,
			},
			err,
		)
	})

	t.Run("define after resolution", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)
		context.RegisterModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})

		descriptor := context.FunctionDescriptor("add", i64BinaryFunctionType)
		assert.False(t, descriptor.IsIRFunction())

		descriptor.Resolve()
		assert.True(t, descriptor.IsIRFunction())

		err := RecoverError(func() {
			descriptor.Define(&NativeFunction{}, "")
		})
		require.ErrorAs(t, err, &DoubleDefinitionError{})
	})
}

func TestFunctionDescriptor_Resolve(t *testing.T) {

	t.Parallel()

	t.Run("native function", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()
		symbol := &testNativeSymbol{
			address: 0x2000,
			call: func(arguments []values.Value) values.Value {
				return values.I64(len(arguments))
			},
		}
		extension.addSymbol("libc", "puts", symbol)

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.FunctionDescriptor("puts", i64BinaryFunctionType)

		function, err := descriptor.TryResolve()
		require.NoError(t, err)
		assert.Equal(t, FunctionKindNative, function.Kind())

		assert.Equal(t, "puts", descriptor.Name())
		assert.Equal(t, "libc", descriptor.Library())
		assert.Same(t, symbol, descriptor.NativeFunction())

		result, err := context.Invoke(descriptor, values.I64(1))
		require.NoError(t, err)
		assert.Equal(t, values.I64(2), result)
	})

	t.Run("absent native symbol", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()
		extension.addSymbol("libc", "puts", nil)

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.FunctionDescriptor("puts", i64BinaryFunctionType)
		assert.True(t, descriptor.IsNativeFunction())

		_, err := context.Invoke(descriptor)
		RequireError(t, err)
		assert.EqualError(t, err, "Native function puts not found")
	})

	t.Run("absent function", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.FunctionDescriptor("missing", i64BinaryFunctionType)

		_, err := descriptor.TryResolve()
		RequireError(t, err)
		assert.True(t, errors.IsUserError(err))

		var linkerError LinkerError
		require.ErrorAs(t, err, &linkerError)
		assert.Equal(t, "missing", linkerError.FunctionName)
		assert.Equal(t, "External function missing cannot be found.", err.Error())

		// the function stays unresolved, and resolution is retried

		assert.False(t, descriptor.IsDefined())

		symbol := &testNativeSymbol{address: 0x3000}
		extension.addSymbol("libm", "missing", symbol)

		function, err := descriptor.TryResolve()
		require.NoError(t, err)
		assert.Equal(t, FunctionKindNative, function.Kind())
		assert.Equal(t, "libm", descriptor.Library())

		assert.Equal(t, []string{"missing", "missing"}, extension.lookups)
	})

	t.Run("closest name", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)
		context.RegisterModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("compute")},
		})

		descriptor := context.FunctionDescriptor("compte", i64BinaryFunctionType)

		_, err := descriptor.TryResolve()
		var linkerError LinkerError
		require.ErrorAs(t, err, &linkerError)
		assert.Equal(t, "compute", linkerError.ClosestName)
		assert.Equal(t,
			"External function compte cannot be found. Did you mean compute?",
			err.Error(),
		)
	})

	t.Run("resolution order", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()
		extension.addSymbol("libc", "both", &testNativeSymbol{address: 0x4000})

		provider := newTestIntrinsicProvider("both", "intrinsic")

		context, _ := newTestContext(func(config *Config) {
			config.
				WithNativeExtension(extension).
				WithIntrinsicProvider(provider)
		})

		context.RegisterModule(&Module{
			Name: "m",
			Functions: []*ir.FunctionDefinition{
				newAddDefinition("both"),
				newAddDefinition("intrinsic"),
				newAddDefinition("body"),
			},
		})

		assert.True(t, context.FunctionDescriptor("both", i64BinaryFunctionType).IsNativeFunction())
		assert.True(t, context.FunctionDescriptor("intrinsic", i64BinaryFunctionType).IsIntrinsicFunction())

		body := context.FunctionDescriptor("body", i64BinaryFunctionType)
		assert.False(t, body.IsNativeFunction())
		assert.True(t, body.IsIRFunction())
		assert.Equal(t, "m", body.Library())
	})

	t.Run("IR query does not resolve", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.FunctionDescriptor("puts", nil)
		assert.False(t, descriptor.IsIRFunction())
		assert.False(t, descriptor.IsDefined())
		assert.Empty(t, extension.lookups)
	})
}

func TestFunctionDescriptor_LazyConversion(t *testing.T) {

	t.Parallel()

	t.Run("converted once", func(t *testing.T) {
		t.Parallel()

		context, factory := newTestContext(nil)

		sourceType := &types.SourceType{Name: "long (long, long)"}
		definition := newAddDefinition("add")
		definition.SourceType = sourceType

		descriptors := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{definition},
		})
		require.Len(t, descriptors, 1)
		descriptor := descriptors[0]

		assert.Equal(t, FunctionKindLazyIR, descriptor.Function().Kind())
		assert.Same(t, sourceType, descriptor.SourceType())
		assert.Equal(t, int64(0), factory.created.Load())

		result, err := context.Invoke(descriptor, values.I64(1), values.I64(2))
		require.NoError(t, err)
		assert.Equal(t, values.I64(3), result)

		assert.Equal(t, FunctionKindIR, descriptor.Function().Kind())
		assert.Same(t, sourceType, descriptor.SourceType())
		assert.Equal(t, "m", descriptor.Library())

		callTarget := descriptor.IRCallTarget()
		assert.Same(t, callTarget, descriptor.IRCallTarget())
		assert.Same(t, callTarget, descriptor.CallTarget())

		result, err = context.Invoke(descriptor, values.I64(40), values.I64(2))
		require.NoError(t, err)
		assert.Equal(t, values.I64(42), result)

		assert.Equal(t, int64(1), factory.created.Load())
		assert.Equal(t, uint64(2), callTarget.CallCount())
		assert.Equal(t, 5, callTarget.Layout().Size())
	})

	t.Run("concurrent conversion", func(t *testing.T) {
		t.Parallel()

		context, factory := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		const goroutines = 16

		callTargets := make([]CallTarget, goroutines)

		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				callTargets[i] = descriptor.CallTarget()
			}(i)
		}
		wg.Wait()

		for _, callTarget := range callTargets {
			assert.Same(t, callTargets[0], callTarget)
		}
		assert.Equal(t, int64(1), factory.created.Load())
	})

	t.Run("not in optimized code", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		err := RecoverError(func() {
			descriptor.CallTargetFrom(frame.ExecutionModeOptimized)
		})
		RequireError(t, err)
		assert.Equal(t, ConversionInCompiledCodeError{FunctionName: "add"}, err)
		assert.Equal(t, FunctionKindLazyIR, descriptor.Function().Kind())

		site := NewCallSiteCache(descriptor)
		callTarget := site.CallTarget(frame.ExecutionModeOptimized)
		assert.Equal(t, uint64(1), site.Deoptimizations())
		assert.Same(t, descriptor.IRCallTarget(), callTarget)

		// converted functions can be called from optimized code
		assert.Same(t, callTarget, descriptor.CallTargetFrom(frame.ExecutionModeOptimized))
	})

	t.Run("missing block executor factory", func(t *testing.T) {
		t.Parallel()

		context := NewContext(NewConfig())

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		_, err := context.Invoke(descriptor, values.I64(1), values.I64(2))
		RequireError(t, err)
		assert.True(t, errors.IsInternalError(err))
	})
}

func TestFunctionDescriptor_ToNative(t *testing.T) {

	t.Parallel()

	t.Run("synthetic pointer", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		assert.False(t, descriptor.IsPointer())
		_, err := descriptor.AsPointer()
		require.Error(t, err)

		pointer := descriptor.ToNative()
		assert.Equal(t, values.NewNativePointer(0xDEADFACE00000000|descriptor.ID()), pointer)
		assert.True(t, IsTaggedFunctionPointer(pointer.Address))
		assert.Equal(t, descriptor.ID(), UntagFunctionPointer(pointer.Address))
		assert.Nil(t, descriptor.NativeWrapper())

		assert.True(t, descriptor.IsPointer())
		address, err := descriptor.AsPointer()
		require.NoError(t, err)
		assert.Equal(t, pointer.Address, address)

		// cached
		assert.Equal(t, pointer, descriptor.ToNative())

		registered, ok := context.FunctionDescriptorForPointer(pointer.Address)
		require.True(t, ok)
		assert.Same(t, descriptor, registered)

		// the function pointer is equal to the descriptor
		assert.True(t, values.Equals(descriptor, pointer))
	})

	t.Run("interop wrapper", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		wrapper := &testNativeSymbol{address: 0x7000}
		extension.wrappers[descriptor.ID()] = wrapper

		assert.Equal(t, values.NewNativePointer(0x7000), descriptor.ToNative())
		assert.Same(t, wrapper, descriptor.NativeWrapper())

		registered, ok := context.FunctionDescriptorForPointer(0x7000)
		require.True(t, ok)
		assert.Same(t, descriptor, registered)
	})

	t.Run("extension calls back into the descriptor", func(t *testing.T) {
		t.Parallel()

		extension := &testReentrantNativeExtension{
			testNativeExtension: newTestNativeExtension(),
		}

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		done := make(chan values.NativePointer)
		go func() {
			done <- descriptor.ToNative()
		}()

		select {
		case pointer := <-done:
			assert.Equal(t, values.NewNativePointer(0x7100), pointer)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "native wrapper creation did not complete")
		}

		assert.Equal(t, []NativeSymbol{nil}, extension.observed)
		assert.Equal(t, uint64(0x7100), descriptor.NativeWrapper().Address())
	})

	t.Run("concurrent creation", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		const goroutines = 16

		pointers := make([]values.NativePointer, goroutines)

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				pointers[i] = descriptor.ToNative()
			}(i)
		}
		wg.Wait()

		for _, pointer := range pointers {
			assert.Equal(t, pointers[0], pointer)
		}

		registered, ok := context.FunctionDescriptorForPointer(pointers[0].Address)
		require.True(t, ok)
		assert.Same(t, descriptor, registered)
	})

	t.Run("native function", func(t *testing.T) {
		t.Parallel()

		extension := newTestNativeExtension()
		extension.addSymbol("libc", "puts", &testNativeSymbol{address: 0x8000})

		context, _ := newTestContext(func(config *Config) {
			config.WithNativeExtension(extension)
		})

		descriptor := context.FunctionDescriptor("puts", i64BinaryFunctionType)

		assert.Equal(t, values.NewNativePointer(0x8000), descriptor.ToNative())

		registered, ok := context.FunctionDescriptorForPointer(0x8000)
		require.True(t, ok)
		assert.Same(t, descriptor, registered)
	})

	t.Run("unresolved function is resolved first", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)
		context.RegisterModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})

		descriptor := context.FunctionDescriptor("add", i64BinaryFunctionType)
		assert.False(t, descriptor.IsDefined())

		pointer := descriptor.ToNative()
		assert.True(t, descriptor.IsDefined())
		assert.True(t, IsTaggedFunctionPointer(pointer.Address))
	})

	t.Run("unknown pointer", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		_, ok := context.FunctionDescriptorForPointer(0x1234)
		assert.False(t, ok)
	})
}

func TestFunctionDescriptor_Equality(t *testing.T) {

	t.Parallel()

	context, _ := newTestContext(nil)

	a := context.FunctionDescriptor("a", i64BinaryFunctionType)
	b := context.FunctionDescriptor("b", i64BinaryFunctionType)

	assert.True(t, values.Equals(a, context.FunctionDescriptor("a", nil)))
	assert.False(t, values.Equals(a, b))
	assert.False(t, values.Equals(a, values.NewNativePointer(a.ID())))
}

func TestContext_Invoke(t *testing.T) {

	t.Parallel()

	t.Run("call", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		context.RegisterModule(&Module{
			Name:      "lib",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})

		descriptor := context.LinkModule(&Module{
			Name:      "main",
			Functions: []*ir.FunctionDefinition{newCallDefinition("double", "add")},
		})[0]

		result, err := context.Invoke(descriptor, values.I64(21))
		require.NoError(t, err)
		assert.Equal(t, values.I64(42), result)

		add, ok := context.LookupFunctionDescriptor("add")
		require.True(t, ok)
		assert.Equal(t, "lib", add.Library())
	})

	t.Run("linkage error in callee", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "main",
			Functions: []*ir.FunctionDefinition{newCallDefinition("double", "absent")},
		})[0]

		_, err := context.Invoke(descriptor, values.I64(21))
		RequireError(t, err)
		require.ErrorAs(t, err, &LinkerError{})
	})

	t.Run("stack depth limit", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(func(config *Config) {
			config.WithStackDepthLimit(3)
		})

		descriptor := context.LinkModule(&Module{
			Name:      "main",
			Functions: []*ir.FunctionDefinition{newCallDefinition("recurse", "recurse")},
		})[0]

		_, err := context.Invoke(descriptor, values.I64(1))
		RequireError(t, err)
		assert.Equal(t, StackDepthLimitReachedError{Limit: 3}, err)
	})

	t.Run("optimization threshold", func(t *testing.T) {
		t.Parallel()

		context, factory := newTestContext(func(config *Config) {
			config.WithOptimizationThreshold(2)
		})

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		for i := 0; i < 4; i++ {
			result, err := context.Invoke(descriptor, values.I64(i), values.I64(i))
			require.NoError(t, err)
			assert.Equal(t, values.I64(2*i), result)
		}

		assert.Equal(t,
			[]frame.ExecutionMode{
				frame.ExecutionModeInterpreted,
				frame.ExecutionModeInterpreted,
				frame.ExecutionModeOptimized,
				frame.ExecutionModeOptimized,
			},
			factory.Modes(),
		)
	})
}

func TestContext_RegisterModule_DoubleDefinition(t *testing.T) {

	t.Parallel()

	context, _ := newTestContext(nil)

	context.RegisterModule(&Module{
		Name:      "a",
		Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
	})

	err := RecoverError(func() {
		context.RegisterModule(&Module{
			Name:      "b",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})
	})
	require.ErrorAs(t, err, &DoubleDefinitionError{})

	// a failed registration registers nothing
	err = RecoverError(func() {
		context.RegisterModule(&Module{
			Name: "b",
			Functions: []*ir.FunctionDefinition{
				newAddDefinition("fresh"),
				newAddDefinition("add"),
			},
		})
	})
	require.ErrorAs(t, err, &DoubleDefinitionError{})

	_, ok := context.lookupBody("fresh")
	assert.False(t, ok)

	body, ok := context.lookupBody("add")
	require.True(t, ok)
	assert.Equal(t, "a", body.library)

	err = RecoverError(func() {
		context.RegisterModule(&Module{
			Name: "e",
			Functions: []*ir.FunctionDefinition{
				newAddDefinition("twice"),
				newAddDefinition("twice"),
			},
		})
	})
	require.ErrorAs(t, err, &DoubleDefinitionError{})

	_, ok = context.lookupBody("twice")
	assert.False(t, ok)

	err = RecoverError(func() {
		context.LinkModule(&Module{
			Name:      "c",
			Functions: []*ir.FunctionDefinition{newAddDefinition("sub")},
		})
		context.LinkModule(&Module{
			Name:      "d",
			Functions: []*ir.FunctionDefinition{newAddDefinition("sub")},
		})
	})
	require.ErrorAs(t, err, &DoubleDefinitionError{})
}

func TestCallSiteCache(t *testing.T) {

	t.Parallel()

	context, _ := newTestContext(nil)

	descriptor := context.LinkModule(&Module{
		Name:      "m",
		Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
	})[0]

	site := NewCallSiteCache(descriptor)
	assert.Same(t, descriptor, site.Descriptor())

	first := site.CallTarget(frame.ExecutionModeInterpreted)
	assert.Same(t, descriptor.IRCallTarget(), first)

	// the cached entry is valid for the current binding
	entry := site.entry.Load()
	require.NotNil(t, entry)
	assert.Equal(t, descriptor.Generation(), entry.generation)

	assert.Same(t, first, site.CallTarget(frame.ExecutionModeOptimized))
	assert.Equal(t, uint64(0), site.Deoptimizations())

	// an outdated entry is replaced
	site.entry.Store(&callSiteEntry{
		callTarget: CallTargetFunc(func([]values.Value) values.Value {
			return nil
		}),
		generation: entry.generation - 1,
	})
	assert.Same(t, first, site.CallTarget(frame.ExecutionModeInterpreted))
}

func TestLinkerError(t *testing.T) {

	t.Parallel()

	assert.Equal(t,
		"External function f cannot be found.",
		LinkerError{FunctionName: "f"}.Error(),
	)
	assert.Equal(t,
		"Native function f not found",
		LinkerError{FunctionName: "f", Native: true}.Error(),
	)

	assert.Equal(t, "memcpy", findClosestName("memcyp", []string{"memset", "memcpy", "strlen"}))
	assert.Equal(t, "", findClosestName("x", []string{"memcpy"}))
	assert.Equal(t, "", findClosestName("f", nil))
}

func TestFunctionKind_String(t *testing.T) {

	t.Parallel()

	for kind, expected := range map[FunctionKind]string{
		FunctionKindNull:       "null",
		FunctionKindUnresolved: "unresolved",
		FunctionKindLazyIR:     "lazy IR",
		FunctionKindIR:         "IR",
		FunctionKindNative:     "native",
		FunctionKindIntrinsic:  "intrinsic",
	} {
		assert.Equal(t, expected, kind.String(), fmt.Sprint(uint8(kind)))
	}
}
