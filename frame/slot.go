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

// Package frame implements the layout of function frames:
// the slots of a function, which slots must be cleared on block entry and exit,
// the activation records of invocations, and copying of arguments into a frame.
package frame

import (
	"fmt"

	"github.com/onflow/irengine/common"
	"github.com/onflow/irengine/types"
)

// SlotKind is the storage kind of a frame slot.
type SlotKind uint8

const (
	SlotKindIllegal SlotKind = iota
	SlotKindObject
	SlotKindBoolean
	SlotKindByte
	SlotKindShort
	SlotKindInt
	SlotKindLong
	SlotKindFloat
	SlotKindDouble
)

var slotKindNames = [...]string{
	SlotKindIllegal: "Illegal",
	SlotKindObject:  "Object",
	SlotKindBoolean: "Boolean",
	SlotKindByte:    "Byte",
	SlotKindShort:   "Short",
	SlotKindInt:     "Int",
	SlotKindLong:    "Long",
	SlotKindFloat:   "Float",
	SlotKindDouble:  "Double",
}

func (k SlotKind) String() string {
	if int(k) >= len(slotKindNames) {
		return fmt.Sprintf("SlotKind(%d)", k)
	}
	return slotKindNames[k]
}

// IsPrimitive returns true if values of this kind are stored unboxed.
func (k SlotKind) IsPrimitive() bool {
	return k > SlotKindObject
}

// KindForType returns the storage kind for values of the given type.
// Primitive types of a supported width are stored unboxed, everything else is boxed.
func KindForType(ty types.Type) SlotKind {
	primitiveType, ok := ty.(*types.PrimitiveType)
	if !ok {
		return SlotKindObject
	}

	switch primitiveType.Kind {
	case types.I1:
		return SlotKindBoolean
	case types.I8:
		return SlotKindByte
	case types.I16:
		return SlotKindShort
	case types.I32:
		return SlotKindInt
	case types.I64:
		return SlotKindLong
	case types.Float:
		return SlotKindFloat
	case types.Double:
		return SlotKindDouble
	default:
		return SlotKindObject
	}
}

// Slot is a storage location in a frame.
// The type and the kind of a slot are fixed when the slot is created.
type Slot struct {
	// slots are identified by their address
	_     common.Incomparable
	index int
	name  string
	ty    types.Type
	kind  SlotKind
}

func newSlot(index int, name string, ty types.Type) *Slot {
	return &Slot{
		index: index,
		name:  name,
		ty:    ty,
		kind:  KindForType(ty),
	}
}

func (s *Slot) Index() int {
	return s.index
}

func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) Type() types.Type {
	return s.ty
}

func (s *Slot) Kind() SlotKind {
	return s.kind
}

func (s *Slot) String() string {
	return fmt.Sprintf("%d:%s(%s)", s.index, s.name, s.kind)
}
