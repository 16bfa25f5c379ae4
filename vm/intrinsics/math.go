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

package intrinsics

import (
	"math"
	"math/bits"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
	"github.com/onflow/irengine/vm"
)

func unsupportedType(name string, functionType *types.FunctionType) errors.UnexpectedError {
	return errors.NewUnexpectedError(
		"intrinsic %s does not support type %s",
		name,
		functionType,
	)
}

func primitiveReturnKind(functionType *types.FunctionType) types.PrimitiveKind {
	primitiveType, ok := functionType.ReturnType.(*types.PrimitiveType)
	if !ok {
		return types.PrimitiveKindUnknown
	}
	return primitiveType.Kind
}

// argument returns the argument as a value of the expected kind.
func argument[T values.Value](name string, value values.Value) T {
	typed, ok := value.(T)
	if !ok {
		panic(values.UnexpectedValueKindError{
			Operation: name,
			Value:     value,
		})
	}
	return typed
}

func unary(name string, fn func(values.Value) values.Value) vm.CallTarget {
	return vm.CallTargetFunc(func(arguments []values.Value) values.Value {
		checkArgumentCount(name, arguments, 1)
		return fn(arguments[1])
	})
}

func generatePopulationCount(name string, functionType *types.FunctionType) vm.CallTarget {
	switch primitiveReturnKind(functionType) {
	case types.I8:
		return unary(name, func(value values.Value) values.Value {
			return values.I8(bits.OnesCount8(uint8(argument[values.I8](name, value))))
		})
	case types.I16:
		return unary(name, func(value values.Value) values.Value {
			return values.I16(bits.OnesCount16(uint16(argument[values.I16](name, value))))
		})
	case types.I32:
		return unary(name, func(value values.Value) values.Value {
			return values.I32(bits.OnesCount32(uint32(argument[values.I32](name, value))))
		})
	case types.I64:
		return unary(name, func(value values.Value) values.Value {
			return values.I64(bits.OnesCount64(uint64(argument[values.I64](name, value))))
		})
	}
	panic(unsupportedType(name, functionType))
}

func generateByteSwap(name string, functionType *types.FunctionType) vm.CallTarget {
	switch primitiveReturnKind(functionType) {
	case types.I16:
		return unary(name, func(value values.Value) values.Value {
			return values.I16(bits.ReverseBytes16(uint16(argument[values.I16](name, value))))
		})
	case types.I32:
		return unary(name, func(value values.Value) values.Value {
			return values.I32(bits.ReverseBytes32(uint32(argument[values.I32](name, value))))
		})
	case types.I64:
		return unary(name, func(value values.Value) values.Value {
			return values.I64(bits.ReverseBytes64(uint64(argument[values.I64](name, value))))
		})
	}
	panic(unsupportedType(name, functionType))
}

// generateAbsolute implements fabs, abs, and labs.
// The absolute value of the minimum integer is the minimum integer, like in C.
func generateAbsolute(name string, functionType *types.FunctionType) vm.CallTarget {
	switch primitiveReturnKind(functionType) {
	case types.Float:
		return unary(name, func(value values.Value) values.Value {
			return values.Float(math.Abs(float64(argument[values.Float](name, value))))
		})
	case types.Double:
		return unary(name, func(value values.Value) values.Value {
			return values.Double(math.Abs(float64(argument[values.Double](name, value))))
		})
	case types.I32:
		return unary(name, func(value values.Value) values.Value {
			v := argument[values.I32](name, value)
			if v < 0 {
				return -v
			}
			return v
		})
	case types.I64:
		return unary(name, func(value values.Value) values.Value {
			v := argument[values.I64](name, value)
			if v < 0 {
				return -v
			}
			return v
		})
	}
	panic(unsupportedType(name, functionType))
}

func generateSquareRoot(name string, functionType *types.FunctionType) vm.CallTarget {
	switch primitiveReturnKind(functionType) {
	case types.Float:
		return unary(name, func(value values.Value) values.Value {
			return values.Float(math.Sqrt(float64(argument[values.Float](name, value))))
		})
	case types.Double:
		return unary(name, func(value values.Value) values.Value {
			return values.Double(math.Sqrt(float64(argument[values.Double](name, value))))
		})
	}
	panic(unsupportedType(name, functionType))
}
