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
	"slices"

	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/types"
)

const (
	StackSlotName     = "<stackpointer>"
	ExceptionSlotName = "<exception>"
)

const (
	StackSlotIndex = iota
	ExceptionSlotIndex
)

// Layout is the ordered set of slots of a function's frame.
// A layout is immutable once built, and is shared by all activations of the function.
type Layout struct {
	slots       []*Slot
	slotsByName map[string]*Slot
}

// Slots returns a copy of the slots of the layout, ordered by index.
func (l *Layout) Slots() []*Slot {
	return slices.Clone(l.slots)
}

func (l *Layout) Size() int {
	return len(l.slots)
}

// FindSlot returns the slot with the given name, if any.
func (l *Layout) FindSlot(name string) *Slot {
	return l.slotsByName[name]
}

func (l *Layout) StackSlot() *Slot {
	return l.slots[StackSlotIndex]
}

// ExceptionSlot returns the exception slot, or nil for root layouts.
func (l *Layout) ExceptionSlot() *Slot {
	if len(l.slots) <= ExceptionSlotIndex {
		return nil
	}
	return l.slots[ExceptionSlotIndex]
}

// LayoutBuilder builds a layout, slot by slot.
type LayoutBuilder struct {
	layout *Layout
}

func NewLayoutBuilder() *LayoutBuilder {
	return &LayoutBuilder{
		layout: &Layout{
			slotsByName: map[string]*Slot{},
		},
	}
}

// AddSlot adds a new slot with the next index.
func (b *LayoutBuilder) AddSlot(name string, ty types.Type) *Slot {
	layout := b.layout
	if _, ok := layout.slotsByName[name]; ok {
		panic(DuplicateSlotError{Name: name})
	}

	slot := newSlot(len(layout.slots), name, ty)
	layout.slots = append(layout.slots, slot)
	layout.slotsByName[name] = slot
	return slot
}

// Build returns the layout. The builder must not be used afterwards.
func (b *LayoutBuilder) Build() *Layout {
	layout := b.layout
	b.layout = nil
	return layout
}

// NewRootLayout returns the layout of a root frame, i.e. a frame
// which is not the frame of a function, but which holds the stack.
func NewRootLayout() *Layout {
	builder := NewLayoutBuilder()
	builder.AddSlot(StackSlotName, types.VoidPointer)
	return builder.Build()
}

// NewLayout returns the layout of the frame of the given function.
//
// The layout consists of the stack pointer slot, the exception slot,
// a slot for each parameter, and a slot for each value-producing instruction,
// in program order.
func NewLayout(function *ir.FunctionDefinition) *Layout {
	builder := NewLayoutBuilder()

	builder.AddSlot(StackSlotName, types.VoidPointer)
	builder.AddSlot(ExceptionSlotName, types.VoidPointer)

	for _, parameter := range function.Parameters {
		builder.AddSlot(
			parameter.Name,
			slotType(parameter.Type, parameter.SourceVariable),
		)
	}

	function.ForEachValueInstruction(func(_ *ir.InstructionBlock, instruction *ir.ValueInstruction) {
		builder.AddSlot(
			instruction.Name,
			slotType(instruction.Type, instruction.SourceVariable),
		)
	})

	return builder.Build()
}

// slotType returns the type of a slot.
// Debug information may attach a source-level type to the types of source variables,
// so these slots get their own copy of the type.
func slotType(ty types.Type, sourceVariable bool) types.Type {
	if sourceVariable && ty != nil {
		return ty.ShallowCopy()
	}
	return ty
}
