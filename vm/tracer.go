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

	"go.opentelemetry.io/otel/attribute"
)

const (
	tracingFunctionPrefix  = "function."
	tracingIntrinsicPrefix = "intrinsic."

	tracingResolvePostfix  = "resolve"
	tracingConvertPostfix  = "convert"
	tracingInvokePostfix   = "invoke"
	tracingGeneratePostfix = "generate"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	context *Context,
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Tracer struct {
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports function resolution, conversion and invocation, and intrinsic generation.
	TracingEnabled bool
}

func (tracer Tracer) enabled() bool {
	return tracer.TracingEnabled && tracer.OnRecordTrace != nil
}

func (tracer Tracer) reportResolveTrace(
	context *Context,
	functionName string,
	kind FunctionKind,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		context,
		tracingFunctionPrefix+tracingResolvePostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("name", functionName),
			attribute.String("kind", kind.String()),
		},
	)
}

func (tracer Tracer) reportConvertTrace(
	context *Context,
	functionName string,
	slotCount int,
	blockCount int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		context,
		tracingFunctionPrefix+tracingConvertPostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("name", functionName),
			attribute.Int("slots", slotCount),
			attribute.Int("blocks", blockCount),
		},
	)
}

func (tracer Tracer) reportInvokeTrace(
	context *Context,
	functionName string,
	functionID uint64,
	argumentCount int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		context,
		tracingFunctionPrefix+tracingInvokePostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("name", functionName),
			attribute.Int64("id", int64(functionID)),
			attribute.Int("arguments", argumentCount),
		},
	)
}

func (tracer Tracer) reportIntrinsicGenerateTrace(
	context *Context,
	intrinsicName string,
	functionType string,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		context,
		tracingIntrinsicPrefix+tracingGeneratePostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("name", intrinsicName),
			attribute.String("type", functionType),
		},
	)
}
