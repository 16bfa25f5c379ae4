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

package frame

import (
	"math"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/values"
)

// ExecutionMode is the mode in which a function's code is executed.
type ExecutionMode uint8

const (
	ExecutionModeInterpreted ExecutionMode = iota
	ExecutionModeOptimized
)

func (m ExecutionMode) String() string {
	switch m {
	case ExecutionModeInterpreted:
		return "interpreted"
	case ExecutionModeOptimized:
		return "optimized"
	}
	panic(errors.NewUnreachableError())
}

// Activation is the per-invocation storage of a frame.
// An activation is only used by the thread executing the invocation.
type Activation struct {
	Layout     *Layout
	Mode       ExecutionMode
	objects    []values.Value
	primitives []uint64
}

func NewActivation(layout *Layout, mode ExecutionMode) *Activation {
	size := layout.Size()
	return &Activation{
		Layout:     layout,
		Mode:       mode,
		objects:    make([]values.Value, size),
		primitives: make([]uint64, size),
	}
}

func checkKind(slot *Slot, expected SlotKind) {
	if slot.Kind() != expected {
		panic(UnexpectedSlotKindError{
			Slot:     slot,
			Expected: expected,
		})
	}
}

func (a *Activation) SetObject(slot *Slot, value values.Value) {
	checkKind(slot, SlotKindObject)
	a.objects[slot.Index()] = value
}

func (a *Activation) Object(slot *Slot) values.Value {
	checkKind(slot, SlotKindObject)
	return a.objects[slot.Index()]
}

func (a *Activation) SetBoolean(slot *Slot, value bool) {
	checkKind(slot, SlotKindBoolean)
	var bits uint64
	if value {
		bits = 1
	}
	a.primitives[slot.Index()] = bits
}

func (a *Activation) Boolean(slot *Slot) bool {
	checkKind(slot, SlotKindBoolean)
	return a.primitives[slot.Index()] != 0
}

func (a *Activation) SetByte(slot *Slot, value int8) {
	checkKind(slot, SlotKindByte)
	a.primitives[slot.Index()] = uint64(value)
}

func (a *Activation) Byte(slot *Slot) int8 {
	checkKind(slot, SlotKindByte)
	return int8(a.primitives[slot.Index()])
}

func (a *Activation) SetShort(slot *Slot, value int16) {
	checkKind(slot, SlotKindShort)
	a.primitives[slot.Index()] = uint64(value)
}

func (a *Activation) Short(slot *Slot) int16 {
	checkKind(slot, SlotKindShort)
	return int16(a.primitives[slot.Index()])
}

func (a *Activation) SetInt(slot *Slot, value int32) {
	checkKind(slot, SlotKindInt)
	a.primitives[slot.Index()] = uint64(value)
}

func (a *Activation) Int(slot *Slot) int32 {
	checkKind(slot, SlotKindInt)
	return int32(a.primitives[slot.Index()])
}

func (a *Activation) SetLong(slot *Slot, value int64) {
	checkKind(slot, SlotKindLong)
	a.primitives[slot.Index()] = uint64(value)
}

func (a *Activation) Long(slot *Slot) int64 {
	checkKind(slot, SlotKindLong)
	return int64(a.primitives[slot.Index()])
}

func (a *Activation) SetFloat(slot *Slot, value float32) {
	checkKind(slot, SlotKindFloat)
	a.primitives[slot.Index()] = uint64(math.Float32bits(value))
}

func (a *Activation) Float(slot *Slot) float32 {
	checkKind(slot, SlotKindFloat)
	return math.Float32frombits(uint32(a.primitives[slot.Index()]))
}

func (a *Activation) SetDouble(slot *Slot, value float64) {
	checkKind(slot, SlotKindDouble)
	a.primitives[slot.Index()] = math.Float64bits(value)
}

func (a *Activation) Double(slot *Slot) float64 {
	checkKind(slot, SlotKindDouble)
	return math.Float64frombits(a.primitives[slot.Index()])
}

// Write stores the value in the slot, according to the slot's kind.
func (a *Activation) Write(slot *Slot, value values.Value) {
	switch slot.Kind() {
	case SlotKindObject:
		a.SetObject(slot, value)

	case SlotKindBoolean:
		a.SetBoolean(slot, bool(primitiveValue[values.I1](slot, value)))

	case SlotKindByte:
		a.SetByte(slot, int8(primitiveValue[values.I8](slot, value)))

	case SlotKindShort:
		a.SetShort(slot, int16(primitiveValue[values.I16](slot, value)))

	case SlotKindInt:
		a.SetInt(slot, int32(primitiveValue[values.I32](slot, value)))

	case SlotKindLong:
		a.SetLong(slot, int64(primitiveValue[values.I64](slot, value)))

	case SlotKindFloat:
		a.SetFloat(slot, float32(primitiveValue[values.Float](slot, value)))

	case SlotKindDouble:
		a.SetDouble(slot, float64(primitiveValue[values.Double](slot, value)))

	default:
		panic(errors.NewUnexpectedError("cannot write slot %s of kind %s", slot.Name(), slot.Kind()))
	}
}

func primitiveValue[T values.Value](slot *Slot, value values.Value) T {
	result, ok := value.(T)
	if !ok {
		panic(errors.NewUnexpectedError(
			"cannot write %T to slot %s of kind %s",
			value,
			slot.Name(),
			slot.Kind(),
		))
	}
	return result
}

// Read returns the value stored in the slot.
func (a *Activation) Read(slot *Slot) values.Value {
	switch slot.Kind() {
	case SlotKindObject:
		return a.Object(slot)
	case SlotKindBoolean:
		return values.I1(a.Boolean(slot))
	case SlotKindByte:
		return values.I8(a.Byte(slot))
	case SlotKindShort:
		return values.I16(a.Short(slot))
	case SlotKindInt:
		return values.I32(a.Int(slot))
	case SlotKindLong:
		return values.I64(a.Long(slot))
	case SlotKindFloat:
		return values.Float(a.Float(slot))
	case SlotKindDouble:
		return values.Double(a.Double(slot))
	default:
		panic(errors.NewUnexpectedError("cannot read slot %s of kind %s", slot.Name(), slot.Kind()))
	}
}
