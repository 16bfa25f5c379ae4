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
	"fmt"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
	"github.com/onflow/irengine/vm"
)

// UnsupportedPointerError is reported when a memory intrinsic is applied
// to memory it cannot access.
type UnsupportedPointerError struct {
	Intrinsic string
	Pointer   values.Value
}

var _ errors.UserError = UnsupportedPointerError{}

func (UnsupportedPointerError) IsUserError() {}

func (e UnsupportedPointerError) Error() string {
	return fmt.Sprintf("%s: unsupported pointer %s", e.Intrinsic, e.Pointer)
}

// OutOfBoundsError is reported when a memory intrinsic accesses memory outside of an allocation.
type OutOfBoundsError struct {
	Intrinsic string
	Offset    int64
	Length    int64
	Size      int
}

var _ errors.UserError = OutOfBoundsError{}

func (OutOfBoundsError) IsUserError() {}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"%s: access of %d bytes at offset %d is out of bounds of allocation of size %d",
		e.Intrinsic,
		e.Length,
		e.Offset,
		e.Size,
	)
}

// memory returns the bytes of the virtual allocation the pointer points into.
func memory(intrinsic string, pointer values.Value, length int64) []byte {
	var buffer *values.VirtualBuffer
	var offset int64

	switch pointer := pointer.(type) {
	case values.VirtualAllocationAddress:
		buffer = pointer.Buffer
		offset = pointer.Offset

	case values.ManagedPointer:
		buffer, _ = pointer.Object.(*values.VirtualBuffer)
		offset = pointer.Offset
	}

	if buffer == nil {
		panic(UnsupportedPointerError{
			Intrinsic: intrinsic,
			Pointer:   pointer,
		})
	}

	size := buffer.Size()
	if offset < 0 || length < 0 || offset > int64(size) || length > int64(size)-offset {
		panic(OutOfBoundsError{
			Intrinsic: intrinsic,
			Offset:    offset,
			Length:    length,
			Size:      size,
		})
	}

	return buffer.Bytes()[offset : offset+length]
}

func integer(value values.Value) int64 {
	switch value := value.(type) {
	case values.I1:
		if value {
			return 1
		}
		return 0
	case values.I8:
		return int64(value)
	case values.I16:
		return int64(value)
	case values.I32:
		return int64(value)
	case values.I64:
		return int64(value)
	}
	panic(values.UnexpectedValueKindError{
		Operation: "integer argument",
		Value:     value,
	})
}

func checkArgumentCount(name string, arguments []values.Value, count int) {
	// argument 0 is the stack
	if len(arguments) < count+1 {
		panic(errors.NewUnexpectedError(
			"%s: expected %d arguments, got %d",
			name,
			count,
			len(arguments)-1,
		))
	}
}

// generateMemoryCopy implements memcpy and memmove.
// The LLVM variants return nothing, the C library functions return the destination.
func generateMemoryCopy(name string, functionType *types.FunctionType) vm.CallTarget {
	returnsDestination := !types.Equal(functionType.ReturnType, types.Void)

	return vm.CallTargetFunc(func(arguments []values.Value) values.Value {
		checkArgumentCount(name, arguments, 3)

		destination := arguments[1]
		source := arguments[2]
		length := integer(arguments[3])

		copy(
			memory(name, destination, length),
			memory(name, source, length),
		)

		if returnsDestination {
			return destination
		}
		return nil
	})
}

// generateMemorySet implements memset.
func generateMemorySet(name string, functionType *types.FunctionType) vm.CallTarget {
	returnsDestination := !types.Equal(functionType.ReturnType, types.Void)

	return vm.CallTargetFunc(func(arguments []values.Value) values.Value {
		checkArgumentCount(name, arguments, 3)

		destination := arguments[1]
		value := byte(integer(arguments[2]))
		length := integer(arguments[3])

		bytes := memory(name, destination, length)
		for i := range bytes {
			bytes[i] = value
		}

		if returnsDestination {
			return destination
		}
		return nil
	})
}
