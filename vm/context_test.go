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
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

type testLivenessAnalysis struct {
	nullableAfter func(layout *frame.Layout) *bitset.BitSet
}

var _ frame.LivenessAnalysis = testLivenessAnalysis{}

func (a testLivenessAnalysis) Analyze(
	function *ir.FunctionDefinition,
	layout *frame.Layout,
	_ ir.Phis,
) *frame.LivenessResult {
	return &frame.LivenessResult{
		NullableBefore: make([]*bitset.BitSet, len(function.Blocks)),
		NullableAfter: []*bitset.BitSet{
			a.nullableAfter(layout),
		},
	}
}

type testDebugInfoHandler struct {
	names []string
}

var _ DebugInfoHandler = testDebugInfoHandler{}

func (h testDebugInfoHandler) NotNullableSlots(_ *ir.FunctionDefinition, layout *frame.Layout) []*frame.Slot {
	slots := make([]*frame.Slot, 0, len(h.names))
	for _, name := range h.names {
		slots = append(slots, layout.FindSlot(name))
	}
	return slots
}

func TestContext_NullableSlots(t *testing.T) {

	t.Parallel()

	analysis := testLivenessAnalysis{
		nullableAfter: func(layout *frame.Layout) *bitset.BitSet {
			return frame.NewSlotSet(
				layout.FindSlot("a"),
				layout.FindSlot("b"),
				layout.FindSlot("c"),
			)
		},
	}

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(func(config *Config) {
			config.WithLivenessAnalysis(analysis)
		})

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		result, err := context.Invoke(descriptor, values.I64(3), values.I64(4))
		require.NoError(t, err)
		assert.Equal(t, values.I64(7), result)

		callTarget := descriptor.IRCallTarget()
		layout := callTarget.Layout()

		assert.Equal(t,
			frame.NullableSlots{
				Before: [][]*frame.Slot{nil},
				After: [][]*frame.Slot{
					{
						layout.FindSlot("a"),
						layout.FindSlot("b"),
						layout.FindSlot("c"),
					},
				},
			},
			callTarget.NullableSlots(),
		)
	})

	t.Run("debug info", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(func(config *Config) {
			config.
				WithLivenessAnalysis(analysis).
				WithDebugInfoHandler(testDebugInfoHandler{
					names: []string{"a"},
				})
		})

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		callTarget := descriptor.IRCallTarget()
		layout := callTarget.Layout()

		assert.Equal(t,
			[][]*frame.Slot{
				{
					layout.FindSlot("b"),
					layout.FindSlot("c"),
				},
			},
			callTarget.NullableSlots().After,
		)
	})

	t.Run("no liveness analysis", func(t *testing.T) {
		t.Parallel()

		context, _ := newTestContext(nil)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
		})[0]

		assert.Equal(t, frame.NullableSlots{}, descriptor.IRCallTarget().NullableSlots())
	})
}

func TestIntrinsic(t *testing.T) {

	t.Parallel()

	t.Run("overloads", func(t *testing.T) {
		t.Parallel()

		provider := newTestIntrinsicProvider("llvm.test")

		context, _ := newTestContext(func(config *Config) {
			config.WithIntrinsicProvider(provider)
		})

		descriptor := context.FunctionDescriptor("llvm.test", i64BinaryFunctionType)
		require.True(t, descriptor.IsIntrinsicFunction())

		intrinsic := descriptor.Intrinsic()
		assert.Equal(t, "llvm.test", intrinsic.Name())
		assert.True(t, intrinsic.ForceInline())
		assert.False(t, intrinsic.ForceSplit())
		assert.Equal(t, 0, intrinsic.OverloadCount())

		result, err := context.Invoke(descriptor, values.I64(1), values.I64(2))
		require.NoError(t, err)
		assert.Equal(t, values.I64(2), result)

		_, err = context.Invoke(descriptor, values.I64(1), values.I64(2))
		require.NoError(t, err)

		assert.Equal(t, 1, provider.generatedCount("llvm.test", i64BinaryFunctionType))

		i32FunctionType := types.NewFunctionType(types.I32Type, false, types.I32Type)

		first := intrinsic.CachedCallTarget(i32FunctionType)
		second := intrinsic.CachedCallTarget(
			types.NewFunctionType(types.I32Type, false, types.I32Type),
		)
		assert.NotNil(t, first)
		assert.NotNil(t, second)

		assert.Equal(t, 1, provider.generatedCount("llvm.test", i32FunctionType))
		assert.Equal(t, 2, intrinsic.OverloadCount())
	})

	t.Run("concurrent generation", func(t *testing.T) {
		t.Parallel()

		provider := newTestIntrinsicProvider("llvm.test")

		context, _ := newTestContext(func(config *Config) {
			config.WithIntrinsicProvider(provider)
		})

		intrinsic := context.FunctionDescriptor("llvm.test", i64BinaryFunctionType).Intrinsic()

		const goroutines = 16

		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				intrinsic.CachedCallTarget(i64BinaryFunctionType)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, provider.generatedCount("llvm.test", i64BinaryFunctionType))
		assert.Equal(t, 1, intrinsic.OverloadCount())
	})

	t.Run("called from IR", func(t *testing.T) {
		t.Parallel()

		provider := newTestIntrinsicProvider("llvm.test")

		context, _ := newTestContext(func(config *Config) {
			config.WithIntrinsicProvider(provider)
		})

		context.FunctionDescriptor("llvm.test", i64BinaryFunctionType)

		descriptor := context.LinkModule(&Module{
			Name:      "m",
			Functions: []*ir.FunctionDefinition{newCallDefinition("f", "llvm.test")},
		})[0]

		for i := 0; i < 3; i++ {
			result, err := context.Invoke(descriptor, values.I64(5))
			require.NoError(t, err)
			assert.Equal(t, values.I64(2), result)
		}

		assert.Equal(t, 1, provider.generatedCount("llvm.test", i64BinaryFunctionType))
	})
}

type testTrace struct {
	operationName string
	attributes    []attribute.KeyValue
}

func TestContext_Tracing(t *testing.T) {

	t.Parallel()

	var mu sync.Mutex
	var traces []testTrace

	provider := newTestIntrinsicProvider("llvm.test")

	context, _ := newTestContext(func(config *Config) {
		config.
			WithIntrinsicProvider(provider).
			WithTracer(Tracer{
				TracingEnabled: true,
				OnRecordTrace: func(
					_ *Context,
					operationName string,
					_ time.Duration,
					attrs []attribute.KeyValue,
				) {
					mu.Lock()
					defer mu.Unlock()
					traces = append(traces, testTrace{
						operationName: operationName,
						attributes:    attrs,
					})
				},
			})
	})

	context.RegisterModule(&Module{
		Name:      "m",
		Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
	})

	descriptor := context.FunctionDescriptor("add", i64BinaryFunctionType)

	_, err := context.Invoke(descriptor, values.I64(1), values.I64(2))
	require.NoError(t, err)

	context.FunctionDescriptor("llvm.test", i64BinaryFunctionType).
		Intrinsic().
		CachedCallTarget(i64BinaryFunctionType)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t,
		[]testTrace{
			{
				operationName: "function.resolve",
				attributes: []attribute.KeyValue{
					attribute.String("name", "add"),
					attribute.String("kind", "lazy IR"),
				},
			},
			{
				operationName: "function.convert",
				attributes: []attribute.KeyValue{
					attribute.String("name", "add"),
					attribute.Int("slots", 5),
					attribute.Int("blocks", 1),
				},
			},
			{
				operationName: "function.invoke",
				attributes: []attribute.KeyValue{
					attribute.String("name", "add"),
					attribute.Int64("id", int64(descriptor.ID())),
					attribute.Int("arguments", 2),
				},
			},
			{
				operationName: "function.resolve",
				attributes: []attribute.KeyValue{
					attribute.String("name", "llvm.test"),
					attribute.String("kind", "intrinsic"),
				},
			},
			{
				operationName: "intrinsic.generate",
				attributes: []attribute.KeyValue{
					attribute.String("name", "llvm.test"),
					attribute.String("type", i64BinaryFunctionType.String()),
				},
			},
		},
		traces,
	)
}

func TestContext_Logging(t *testing.T) {

	t.Parallel()

	var buffer bytes.Buffer
	logger := zerolog.New(&buffer).Level(zerolog.DebugLevel)

	context, _ := newTestContext(func(config *Config) {
		config.WithLogger(logger)
	})

	context.RegisterModule(&Module{
		Name:      "m",
		Functions: []*ir.FunctionDefinition{newAddDefinition("add")},
	})

	_, err := context.Invoke(
		context.FunctionDescriptor("add", i64BinaryFunctionType),
		values.I64(1),
		values.I64(2),
	)
	require.NoError(t, err)

	_, err = context.FunctionDescriptor("ad", i64BinaryFunctionType).TryResolve()
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)

	assert.JSONEq(t,
		`{"level":"debug","function":"add","kind":"lazy IR","library":"m","message":"resolved function"}`,
		lines[0],
	)
	assert.JSONEq(t,
		`{"level":"debug","function":"add","slots":5,"blocks":1,"message":"converted function"}`,
		lines[1],
	)
	assert.JSONEq(t,
		`{"level":"warn","function":"ad","closest":"add","message":"cannot resolve function"}`,
		lines[2],
	)
}

func TestContext_Invoke_ExternalPanic(t *testing.T) {

	t.Parallel()

	var buffer bytes.Buffer
	logger := zerolog.New(&buffer).Level(zerolog.ErrorLevel)

	extension := newTestNativeExtension()
	extension.addSymbol("libc", "abort", &testNativeSymbol{
		address: 0x9000,
		call: func(_ []values.Value) values.Value {
			panic("aborted")
		},
	})

	context, _ := newTestContext(func(config *Config) {
		config.WithLogger(logger).
			WithNativeExtension(extension)
	})

	_, err := context.Invoke(context.FunctionDescriptor("abort", nil))
	require.Error(t, err)

	external, ok := errors.GetExternalError(err)
	require.True(t, ok)
	assert.Equal(t, "aborted", external.Recovered)

	assert.JSONEq(t,
		`{"level":"error","function":"abort","recovered":"aborted","message":"function panicked"}`,
		strings.TrimSpace(buffer.String()),
	)
}
