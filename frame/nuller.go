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
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

// ClearSlots clears each of the given slots.
func (a *Activation) ClearSlots(slots []*Slot) {
	for _, slot := range slots {
		a.ClearSlot(slot)
	}
}

// ClearSlot clears the slot.
// Boxed slots are always cleared, primitive slots only in optimized code.
func (a *Activation) ClearSlot(slot *Slot) {
	if slot.Kind() == SlotKindObject {
		a.objects[slot.Index()] = NullValue(slot.Type())
		return
	}

	if a.Mode != ExecutionModeOptimized {
		return
	}

	// NOTE: performance-sensitive in optimized code, keep as an explicit branch chain
	if slot.Kind() == SlotKindBoolean {
		a.SetBoolean(slot, false)
	} else if slot.Kind() == SlotKindByte {
		a.SetByte(slot, 0)
	} else if slot.Kind() == SlotKindShort {
		a.SetShort(slot, 0)
	} else if slot.Kind() == SlotKindInt {
		a.SetInt(slot, 0)
	} else if slot.Kind() == SlotKindLong {
		a.SetLong(slot, 0)
	} else if slot.Kind() == SlotKindFloat {
		a.SetFloat(slot, 0)
	} else if slot.Kind() == SlotKindDouble {
		a.SetDouble(slot, 0)
	} else {
		panic(UnexpectedSlotKindError{
			Slot:     slot,
			Expected: SlotKindObject,
		})
	}
}

// NullValue returns the value a boxed slot of the given type holds when it is cleared.
func NullValue(ty types.Type) values.Value {
	if ty == nil {
		return values.NullPointer
	}

	if types.IsFunctionOrFunctionPointer(ty) {
		return values.NullPointer
	}

	switch ty := ty.(type) {
	case *types.VectorType:
		return nullVector(ty)

	case *types.VariableBitWidthType:
		return values.NullIVarBit()

	case *types.PrimitiveType:
		if ty.Kind == types.X86FP80 {
			return values.NewFloat80(false, 0, 0)
		}
	}

	return values.NullPointer
}

func nullVector(vectorType *types.VectorType) values.Value {
	switch elementType := vectorType.ElementType.(type) {
	case *types.PrimitiveType:
		switch elementType.Kind {
		case types.Double:
			return values.DoubleVector{}
		case types.Float:
			return values.FloatVector{}
		case types.I1:
			return values.I1Vector{}
		case types.I16:
			return values.I16Vector{}
		case types.I32:
			return values.I32Vector{}
		case types.I64:
			return values.I64Vector{}
		case types.I8:
			return values.I8Vector{}
		}

	case *types.PointerType:
		return values.NullPointerVector(int(vectorType.Length))
	}

	panic(UnsupportedVectorElementError{
		ElementType: vectorType.ElementType,
	})
}
