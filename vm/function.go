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
	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
)

// FunctionKind is the kind of binding of a function descriptor.
type FunctionKind uint8

const (
	FunctionKindNull FunctionKind = iota
	FunctionKindUnresolved
	FunctionKindLazyIR
	FunctionKindIR
	FunctionKindNative
	FunctionKindIntrinsic
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionKindNull:
		return "null"
	case FunctionKindUnresolved:
		return "unresolved"
	case FunctionKindLazyIR:
		return "lazy IR"
	case FunctionKindIR:
		return "IR"
	case FunctionKindNative:
		return "native"
	case FunctionKindIntrinsic:
		return "intrinsic"
	}
	panic(errors.NewUnreachableError())
}

// Function is the binding of a function descriptor, i.e. its implementation.
type Function interface {
	isFunction()
	Kind() FunctionKind
}

// NullFunction is the binding of the null function.
type NullFunction struct{}

var _ Function = NullFunction{}

func (NullFunction) isFunction() {}

func (NullFunction) Kind() FunctionKind {
	return FunctionKindNull
}

// UnresolvedFunction is the binding of a function which is not yet bound.
type UnresolvedFunction struct{}

var _ Function = UnresolvedFunction{}

func (UnresolvedFunction) isFunction() {}

func (UnresolvedFunction) Kind() FunctionKind {
	return FunctionKindUnresolved
}

// LazyIRFunction is the binding of a function with an IR body which is not yet converted.
type LazyIRFunction struct {
	Converter *LazyConverter
}

var _ Function = &LazyIRFunction{}

func (*LazyIRFunction) isFunction() {}

func (*LazyIRFunction) Kind() FunctionKind {
	return FunctionKindLazyIR
}

// IRFunction is the binding of a function with a converted IR body.
type IRFunction struct {
	CallTarget *IRCallTarget
	SourceType *types.SourceType
}

var _ Function = &IRFunction{}

func (*IRFunction) isFunction() {}

func (*IRFunction) Kind() FunctionKind {
	return FunctionKindIR
}

// NativeFunction is the binding of a function to a symbol of a native library.
// The symbol is nil if the library does not export the function.
type NativeFunction struct {
	Symbol NativeSymbol
}

var _ Function = &NativeFunction{}

func (*NativeFunction) isFunction() {}

func (*NativeFunction) Kind() FunctionKind {
	return FunctionKindNative
}

// IntrinsicFunction is the binding of a function to an intrinsic.
type IntrinsicFunction struct {
	Intrinsic *Intrinsic
}

var _ Function = &IntrinsicFunction{}

func (*IntrinsicFunction) isFunction() {}

func (*IntrinsicFunction) Kind() FunctionKind {
	return FunctionKindIntrinsic
}
