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
	"cmp"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

// FunctionPointerTag marks synthetic native pointers of functions
// which have no native wrapper. The lower 32 bits hold the function ID.
const FunctionPointerTag uint64 = 0xDEADFACE00000000

const functionPointerTagMask uint64 = 0xFFFFFFFF00000000

func TagFunctionPointer(id uint64) uint64 {
	return id | FunctionPointerTag
}

func IsTaggedFunctionPointer(pointer uint64) bool {
	return pointer&functionPointerTagMask == FunctionPointerTag
}

func UntagFunctionPointer(pointer uint64) uint64 {
	return pointer &^ functionPointerTagMask
}

type functionState struct {
	function Function
	library  string
	// generation is incremented each time the binding changes
	generation uint64
}

// FunctionDescriptor represents a function of an execution context.
//
// There is one descriptor per symbol. The descriptor is created unresolved,
// and is bound to an implementation either explicitly, or on first use.
// Descriptors are compared by ID only.
type FunctionDescriptor struct {
	id           uint64
	name         string
	functionType *types.FunctionType
	context      *Context

	// mu guards mutations of the binding
	mu    sync.Mutex
	state atomic.Pointer[functionState]

	// nativeMu guards the creation of the native wrapper
	nativeMu      sync.Mutex
	nativeWrapper NativeSymbol
	nativePointer atomic.Pointer[uint64]
}

var _ values.FunctionReference = &FunctionDescriptor{}

func newFunctionDescriptor(
	context *Context,
	id uint64,
	name string,
	functionType *types.FunctionType,
	function Function,
) *FunctionDescriptor {
	descriptor := &FunctionDescriptor{
		id:           id,
		name:         name,
		functionType: functionType,
		context:      context,
	}
	descriptor.state.Store(&functionState{
		function: function,
	})
	return descriptor
}

func (*FunctionDescriptor) IsValue() {}

func (d *FunctionDescriptor) ID() uint64 {
	return d.id
}

func (d *FunctionDescriptor) FunctionID() uint64 {
	return d.id
}

func (d *FunctionDescriptor) Name() string {
	return d.name
}

func (d *FunctionDescriptor) Type() *types.FunctionType {
	return d.functionType
}

func (d *FunctionDescriptor) Context() *Context {
	return d.context
}

func (d *FunctionDescriptor) String() string {
	if d.name == "" {
		return fmt.Sprintf("function@%d (anonymous)", d.id)
	}
	return fmt.Sprintf("function@%d '%s'", d.id, d.name)
}

func (d *FunctionDescriptor) Compare(other *FunctionDescriptor) int {
	return cmp.Compare(d.id, other.id)
}

// Function returns the current binding, without resolving it.
func (d *FunctionDescriptor) Function() Function {
	return d.state.Load().function
}

// Library returns the name of the library which defines the function, if any.
func (d *FunctionDescriptor) Library() string {
	return d.state.Load().library
}

// Generation returns the generation of the binding.
// The generation changes whenever the binding changes.
func (d *FunctionDescriptor) Generation() uint64 {
	return d.state.Load().generation
}

func (d *FunctionDescriptor) IsDefined() bool {
	return d.Function().Kind() != FunctionKindUnresolved
}

// IsIRFunction returns true if the function is currently bound to an IR body.
// Unlike IsNativeFunction and IsIntrinsicFunction, it does not resolve the function.
func (d *FunctionDescriptor) IsIRFunction() bool {
	kind := d.Function().Kind()
	return kind == FunctionKindLazyIR || kind == FunctionKindIR
}

func (d *FunctionDescriptor) IsNativeFunction() bool {
	function, err := d.TryResolve()
	return err == nil && function.Kind() == FunctionKindNative
}

func (d *FunctionDescriptor) IsIntrinsicFunction() bool {
	function, err := d.TryResolve()
	return err == nil && function.Kind() == FunctionKindIntrinsic
}

// SourceType returns the source-level type of the function, if known.
func (d *FunctionDescriptor) SourceType() *types.SourceType {
	switch function := d.Function().(type) {
	case *IRFunction:
		return function.SourceType
	case *LazyIRFunction:
		return function.Converter.Definition().SourceType
	}
	return nil
}

// install replaces the binding. d.mu must be held.
func (d *FunctionDescriptor) install(function Function, library string) uint64 {
	generation := d.state.Load().generation + 1
	d.state.Store(&functionState{
		function:   function,
		library:    library,
		generation: generation,
	})
	return generation
}

// Define binds the function explicitly.
// A function can only be defined once, and not after it was resolved.
func (d *FunctionDescriptor) Define(function Function, library string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.state.Load().function
	if current.Kind() != FunctionKindUnresolved {
		panic(DoubleDefinitionError{
			FunctionName: d.name,
			Existing:     current.Kind(),
		})
	}

	d.install(function, library)

	d.context.config.Logger.Debug().
		Str("function", d.name).
		Str("kind", function.Kind().String()).
		Str("library", library).
		Msg("defined function")
}

// Resolve returns the binding of the function, binding it first if it is unresolved.
// If the function cannot be bound, a LinkerError is raised,
// and the function stays unresolved, so a later call retries.
func (d *FunctionDescriptor) Resolve() Function {
	function := d.Function()
	if function.Kind() != FunctionKindUnresolved {
		return function
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	function = d.Function()
	if function.Kind() != FunctionKindUnresolved {
		return function
	}

	function, library := d.resolveImplicitly()
	d.install(function, library)
	return function
}

// TryResolve is like Resolve, but returns errors instead of raising them.
func (d *FunctionDescriptor) TryResolve() (function Function, err error) {
	defer func() {
		errors.Recover(recover(), &err)
	}()

	return d.Resolve(), nil
}

func (d *FunctionDescriptor) resolveImplicitly() (Function, string) {
	context := d.context
	config := context.config

	var startTime time.Time
	if config.enabled() {
		startTime = time.Now()
	}

	function, library, ok := d.lookupImplementation()
	if !ok {
		closestName := findClosestName(d.name, context.knownFunctionNames())

		config.Logger.Warn().
			Str("function", d.name).
			Str("closest", closestName).
			Msg("cannot resolve function")

		panic(LinkerError{
			FunctionName: d.name,
			ClosestName:  closestName,
		})
	}

	if config.enabled() {
		config.reportResolveTrace(
			context,
			d.name,
			function.Kind(),
			time.Since(startTime),
		)
	}

	config.Logger.Debug().
		Str("function", d.name).
		Str("kind", function.Kind().String()).
		Str("library", library).
		Msg("resolved function")

	return function, library
}

// lookupImplementation finds the implementation of the function:
// the null function, a native library export, an intrinsic, or a module body, in that order.
func (d *FunctionDescriptor) lookupImplementation() (Function, string, bool) {
	context := d.context
	config := context.config

	if d.id == NullFunctionID {
		return NullFunction{}, "", true
	}

	if extension := config.NativeExtension; extension != nil {
		result, ok := extension.LookupNativeFunction(d.name)
		if ok {
			return &NativeFunction{Symbol: result.Symbol}, result.Library, true
		}
	}

	if provider := config.IntrinsicProvider; provider != nil {
		factory, ok := provider.LookupIntrinsic(d.name)
		if ok {
			return &IntrinsicFunction{
				Intrinsic: newIntrinsic(context, d.name, factory),
			}, "", true
		}
	}

	body, ok := context.lookupBody(d.name)
	if ok {
		return &LazyIRFunction{
			Converter: NewLazyConverter(context, body.definition),
		}, body.library, true
	}

	return nil, "", false
}

// CallTarget returns the call target of the function, resolving and converting it if needed.
func (d *FunctionDescriptor) CallTarget() CallTarget {
	return d.CallTargetFrom(frame.ExecutionModeInterpreted)
}

// CallTargetFrom returns the call target of the function, for a caller executing in the given mode.
// Optimized code must not trigger the conversion of a function body.
func (d *FunctionDescriptor) CallTargetFrom(mode frame.ExecutionMode) CallTarget {
	callTarget, _ := d.callTarget(mode)
	return callTarget
}

func (d *FunctionDescriptor) callTarget(mode frame.ExecutionMode) (CallTarget, uint64) {
	d.Resolve()

	state := d.state.Load()

	switch function := state.function.(type) {
	case NullFunction:
		panic(NullFunctionCallError{})

	case *LazyIRFunction:
		if mode == frame.ExecutionModeOptimized {
			panic(ConversionInCompiledCodeError{
				FunctionName: d.name,
			})
		}
		return d.convert()

	case *IRFunction:
		return function.CallTarget, state.generation

	case *NativeFunction:
		if function.Symbol == nil {
			panic(LinkerError{
				FunctionName: d.name,
				Native:       true,
			})
		}
		return function.Symbol, state.generation

	case *IntrinsicFunction:
		return function.Intrinsic.CachedCallTarget(d.functionType), state.generation

	default:
		panic(errors.NewUnexpectedError("unexpected function binding: %T", function))
	}
}

// needsConversion returns true if the function has an IR body which is not yet converted.
func (d *FunctionDescriptor) needsConversion() bool {
	return d.Function().Kind() == FunctionKindLazyIR
}

// convert converts the IR body of the function, at most once.
func (d *FunctionDescriptor) convert() (*IRCallTarget, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.state.Load()

	switch function := state.function.(type) {
	case *IRFunction:
		return function.CallTarget, state.generation

	case *LazyIRFunction:
		converter := function.Converter
		callTarget := converter.Convert(d)
		generation := d.install(
			&IRFunction{
				CallTarget: callTarget,
				SourceType: converter.Definition().SourceType,
			},
			state.library,
		)
		return callTarget, generation

	default:
		panic(errors.NewUnexpectedError("cannot convert function binding: %T", function))
	}
}

// IRCallTarget returns the converted call target of a function with an IR body.
func (d *FunctionDescriptor) IRCallTarget() *IRCallTarget {
	callTarget := d.CallTarget()
	irCallTarget, ok := callTarget.(*IRCallTarget)
	if !ok {
		panic(errors.NewUnexpectedError("function %s has no IR body", d.name))
	}
	return irCallTarget
}

// NativeFunction returns the native symbol the function is bound to.
func (d *FunctionDescriptor) NativeFunction() NativeSymbol {
	function, ok := d.Resolve().(*NativeFunction)
	if !ok {
		panic(errors.NewUnexpectedError("function %s is not a native function", d.name))
	}
	if function.Symbol == nil {
		panic(LinkerError{
			FunctionName: d.name,
			Native:       true,
		})
	}
	return function.Symbol
}

// Intrinsic returns the intrinsic the function is bound to.
func (d *FunctionDescriptor) Intrinsic() *Intrinsic {
	function, ok := d.Resolve().(*IntrinsicFunction)
	if !ok {
		panic(errors.NewUnexpectedError("function %s is not an intrinsic", d.name))
	}
	return function.Intrinsic
}

// IsPointer returns true if the function has a native address.
// The null function always has the address 0.
func (d *FunctionDescriptor) IsPointer() bool {
	return d.id == NullFunctionID ||
		d.nativePointer.Load() != nil
}

func (d *FunctionDescriptor) AsPointer() (uint64, error) {
	if d.id == NullFunctionID {
		return 0, nil
	}
	pointer := d.nativePointer.Load()
	if pointer == nil {
		return 0, values.UnresolvablePointerError{Value: d}
	}
	return *pointer, nil
}

// NativeWrapper returns the native wrapper of the function, if one was created.
func (d *FunctionDescriptor) NativeWrapper() NativeSymbol {
	d.nativeMu.Lock()
	defer d.nativeMu.Unlock()
	return d.nativeWrapper
}

// ToNative returns the native address of the function, creating a native wrapper if needed.
//
// The wrapper is provided by the native extension, if possible.
// Otherwise the function gets a synthetic, tagged pointer.
// Either way the pointer is registered, so the function can be found by its pointer.
//
// The wrapper is created without holding the descriptor's lock,
// so the native extension may call back into the descriptor.
// If two goroutines create a wrapper at the same time, the first one installed wins.
func (d *FunctionDescriptor) ToNative() values.NativePointer {
	if d.id == NullFunctionID {
		return values.NullPointer
	}

	if pointer := d.nativePointer.Load(); pointer != nil {
		return values.NewNativePointer(*pointer)
	}

	wrapper, pointer, wrapperKind := d.createNativeWrapper()

	d.nativeMu.Lock()
	defer d.nativeMu.Unlock()

	if existing := d.nativePointer.Load(); existing != nil {
		return values.NewNativePointer(*existing)
	}

	d.nativeWrapper = wrapper

	if wrapperKind != "" {
		d.context.RegisterFunctionPointer(pointer, d)
	}
	d.nativePointer.Store(&pointer)

	if wrapperKind != "" {
		d.context.config.Logger.Debug().
			Str("function", d.name).
			Uint64("pointer", pointer).
			Str("wrapper", wrapperKind).
			Msg("created native wrapper")
	}

	return values.NewNativePointer(pointer)
}

// createNativeWrapper resolves the function and creates its native wrapper.
// The wrapper kind is empty for the null function, which has no wrapper.
func (d *FunctionDescriptor) createNativeWrapper() (wrapper NativeSymbol, pointer uint64, wrapperKind string) {
	switch function := d.Resolve().(type) {
	case NullFunction:
		return nil, 0, ""

	case *NativeFunction:
		if function.Symbol == nil {
			panic(LinkerError{
				FunctionName: d.name,
				Native:       true,
			})
		}
		return function.Symbol, function.Symbol.Address(), "native"

	default:
		if extension := d.context.config.NativeExtension; extension != nil {
			wrapper, ok := extension.CreateNativeWrapper(d)
			if ok {
				return wrapper, wrapper.Address(), "interop"
			}
		}
		return nil, TagFunctionPointer(d.id), "synthetic"
	}
}
