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
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/irengine/ir"
)

// LivenessResult is the result of a liveness analysis of a function.
//
// For each block, indexed by block index, NullableBefore contains the indices of the slots
// which are dead when entering the block, and NullableAfter contains the indices
// of the slots which are dead when leaving the block.
type LivenessResult struct {
	NullableBefore []*bitset.BitSet
	NullableAfter  []*bitset.BitSet
}

// LivenessAnalysis computes which slots of a frame are dead at block boundaries.
type LivenessAnalysis interface {
	Analyze(function *ir.FunctionDefinition, layout *Layout, phis ir.Phis) *LivenessResult
}

// NullableSlots are, for each block, the slots which must be cleared
// on entry to and exit from the block.
// The slot list of a block is nil if there is nothing to clear.
type NullableSlots struct {
	Before [][]*Slot
	After  [][]*Slot
}

// NewSlotSet returns the set of the indices of the given slots.
func NewSlotSet(slots ...*Slot) *bitset.BitSet {
	set := bitset.New(0)
	for _, slot := range slots {
		set.Set(uint(slot.Index()))
	}
	return set
}

// NullableSlots resolves the slot index sets of the given liveness result to slots.
// Slots in the not-nullable set are never cleared, e.g. because a debugger must be able to inspect them.
func (l *Layout) NullableSlots(result *LivenessResult, notNullable *bitset.BitSet) NullableSlots {
	return NullableSlots{
		Before: l.resolveNullable(result.NullableBefore, notNullable),
		After:  l.resolveNullable(result.NullableAfter, notNullable),
	}
}

func (l *Layout) resolveNullable(sets []*bitset.BitSet, notNullable *bitset.BitSet) [][]*Slot {
	result := make([][]*Slot, len(sets))

	for blockIndex, set := range sets {
		if set == nil {
			continue
		}

		nullable := set
		if notNullable != nil {
			nullable = set.Difference(notNullable)
		}

		if nullable.None() {
			continue
		}

		slots := make([]*Slot, 0, nullable.Count())
		for index, ok := nullable.NextSet(0); ok; index, ok = nullable.NextSet(index + 1) {
			if index >= uint(len(l.slots)) {
				break
			}
			slots = append(slots, l.slots[index])
		}

		if len(slots) > 0 {
			result[blockIndex] = slots
		}
	}

	return result
}
