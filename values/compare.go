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

package values

import (
	"github.com/onflow/irengine/errors"
)

// Kind classifies values which may appear in pointer position.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNativePointer
	KindManagedPointer
	KindVirtualAllocation
	KindBoxedPrimitive
	KindGlobal
	KindFunction
)

// KindOf returns the pointer kind of the given value.
func KindOf(value Value) Kind {
	switch value.(type) {
	case NativePointer:
		return KindNativePointer
	case ManagedPointer:
		return KindManagedPointer
	case VirtualAllocationAddress:
		return KindVirtualAllocation
	case BoxedPrimitive:
		return KindBoxedPrimitive
	case *Global:
		return KindGlobal
	case FunctionReference:
		return KindFunction
	default:
		return KindUnknown
	}
}

// CompareKind is a pointer comparison operator.
type CompareKind uint8

const (
	CompareKindULT CompareKind = iota
	CompareKindUGT
	CompareKindUGE
	CompareKindULE
	CompareKindSLT
	CompareKindSGT
	CompareKindSGE
	CompareKindSLE
	CompareKindEQ
	CompareKindNEQ
	compareKindCount
)

var compareKindNames = [...]string{
	CompareKindULT: "ult",
	CompareKindUGT: "ugt",
	CompareKindUGE: "uge",
	CompareKindULE: "ule",
	CompareKindSLT: "slt",
	CompareKindSGT: "sgt",
	CompareKindSGE: "sge",
	CompareKindSLE: "sle",
	CompareKindEQ:  "eq",
	CompareKindNEQ: "ne",
}

func (k CompareKind) String() string {
	if k >= compareKindCount {
		return "unknown"
	}
	return compareKindNames[k]
}

// IsOrdering returns true if the operator orders its operands,
// i.e. it is neither equality nor inequality.
func (k CompareKind) IsOrdering() bool {
	return k < CompareKindEQ
}

var orderingFunctions = [...]func(a, b uint64) bool{
	CompareKindULT: func(a, b uint64) bool { return a < b },
	CompareKindUGT: func(a, b uint64) bool { return a > b },
	CompareKindUGE: func(a, b uint64) bool { return a >= b },
	CompareKindULE: func(a, b uint64) bool { return a <= b },
	CompareKindSLT: func(a, b uint64) bool { return int64(a) < int64(b) },
	CompareKindSGT: func(a, b uint64) bool { return int64(a) > int64(b) },
	CompareKindSGE: func(a, b uint64) bool { return int64(a) >= int64(b) },
	CompareKindSLE: func(a, b uint64) bool { return int64(a) <= int64(b) },
}

// Compare applies the comparison operator to the two pointer values.
//
// Ordering operators compare the comparable values of the operands.
// For operands without a native address the result is only meaningful
// if both operands point into the same object.
func Compare(kind CompareKind, left, right Value) bool {
	switch kind {
	case CompareKindEQ:
		return Equals(left, right)
	case CompareKindNEQ:
		return !Equals(left, right)
	}

	if kind >= compareKindCount {
		panic(errors.NewUnexpectedError("invalid comparison operator: %d", kind))
	}

	ordering := orderingFunctions[kind]

	if leftPointer, rightPointer, ok := sameManagedObject(left, right); ok {
		key := identityKey(leftPointer.Object)
		return ordering(
			key+uint64(leftPointer.Offset),
			key+uint64(rightPointer.Offset),
		)
	}

	return ordering(
		ToComparableValue(left),
		ToComparableValue(right),
	)
}

// sameManagedObject returns the two values as managed pointers,
// if neither has a native address and both point into equal objects.
func sameManagedObject(left, right Value) (ManagedPointer, ManagedPointer, bool) {
	leftPointer, ok := left.(ManagedPointer)
	if !ok || leftPointer.IsPointer() {
		return ManagedPointer{}, ManagedPointer{}, false
	}
	rightPointer, ok := right.(ManagedPointer)
	if !ok || rightPointer.IsPointer() {
		return ManagedPointer{}, ManagedPointer{}, false
	}
	if !foreignEquals(leftPointer.Object, rightPointer.Object) {
		return ManagedPointer{}, ManagedPointer{}, false
	}
	return leftPointer, rightPointer, true
}

// AddressOf returns the native address of the value.
// Fails with an UnresolvablePointerError if the value has no native address.
func AddressOf(value Value) (uint64, error) {
	resolvable, ok := value.(PointerResolvable)
	if !ok || !resolvable.IsPointer() {
		return 0, UnresolvablePointerError{Value: value}
	}
	address, err := resolvable.AsPointer()
	if err != nil {
		return 0, UnresolvablePointerError{
			Value: value,
			Err:   err,
		}
	}
	return address, nil
}

func nativeAddress(value Value) (uint64, bool) {
	resolvable, ok := value.(PointerResolvable)
	if !ok || !resolvable.IsPointer() {
		return 0, false
	}
	address, err := resolvable.AsPointer()
	if err != nil {
		panic(UnresolvablePointerError{
			Value: value,
			Err:   err,
		})
	}
	return address, true
}

// ToComparableValue converts a pointer value to an integer used for ordering.
//
// Values with a native address use it. Other values use an identity surrogate
// of the object they point into, plus their offset.
func ToComparableValue(value Value) uint64 {
	if address, ok := nativeAddress(value); ok {
		return address
	}

	switch value := value.(type) {
	case ManagedPointer:
		return identityKey(value.Object) + uint64(value.Offset)

	case VirtualAllocationAddress:
		if value.IsNull() {
			return uint64(value.Offset)
		}
		return uint64(value.Buffer.ObjectID()) + uint64(value.Offset)

	case BoxedPrimitive, *Global, FunctionReference:
		panic(UnresolvablePointerError{Value: value})

	default:
		panic(UnexpectedValueKindError{
			Operation: "comparable value",
			Value:     value,
		})
	}
}

// Equals returns true if the two pointer values are equal.
func Equals(left, right Value) bool {
	leftAddress, leftIsNative := nativeAddress(left)
	rightAddress, rightIsNative := nativeAddress(right)
	if leftIsNative && rightIsNative {
		return leftAddress == rightAddress
	}

	return managedEquals(left, right, true)
}

// managedEquals compares two values by their kinds.
// A global is only read once, so a global holding a global does not recurse further.
func managedEquals(left, right Value, readGlobal bool) bool {
	leftKind := KindOf(left)
	rightKind := KindOf(right)

	if leftKind == KindUnknown {
		panic(UnexpectedValueKindError{
			Operation: "equality",
			Value:     left,
		})
	}
	if rightKind == KindUnknown {
		panic(UnexpectedValueKindError{
			Operation: "equality",
			Value:     right,
		})
	}

	switch {
	case leftKind == KindManagedPointer && rightKind == KindManagedPointer:
		leftPointer := left.(ManagedPointer)
		rightPointer := right.(ManagedPointer)
		return foreignEquals(leftPointer.Object, rightPointer.Object) &&
			leftPointer.Offset == rightPointer.Offset

	case leftKind == KindGlobal && rightKind == KindGlobal:
		return left.(*Global) == right.(*Global)

	case leftKind == KindVirtualAllocation && rightKind == KindVirtualAllocation:
		leftAddress := left.(VirtualAllocationAddress)
		rightAddress := right.(VirtualAllocationAddress)
		return leftAddress.Buffer == rightAddress.Buffer &&
			leftAddress.Offset == rightAddress.Offset

	case leftKind == KindFunction && rightKind == KindFunction:
		return left.(FunctionReference).FunctionID() == right.(FunctionReference).FunctionID()

	case leftKind == KindGlobal && rightKind == KindManagedPointer:
		if !readGlobal {
			return false
		}
		return equalsAfterRead(left.(*Global).Read(), right)

	case leftKind == KindManagedPointer && rightKind == KindGlobal:
		if !readGlobal {
			return false
		}
		return equalsAfterRead(left, right.(*Global).Read())

	case leftKind == KindNativePointer || rightKind == KindNativePointer:
		return false

	case leftKind != rightKind:
		return false

	default:
		// Same kind, but no native address and no rule, e.g. two non-integral boxed primitives
		panic(UnexpectedValueKindError{
			Operation: "equality",
			Value:     left,
		})
	}
}

func equalsAfterRead(left, right Value) bool {
	if KindOf(left) == KindUnknown || KindOf(right) == KindUnknown {
		return false
	}
	return managedEquals(left, right, false)
}
