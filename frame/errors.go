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
	"fmt"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
)

// UnexpectedSlotKindError is reported when a slot is accessed as the wrong kind.
type UnexpectedSlotKindError struct {
	Slot     *Slot
	Expected SlotKind
}

var _ errors.InternalError = UnexpectedSlotKindError{}

func (UnexpectedSlotKindError) IsInternalError() {}

func (e UnexpectedSlotKindError) Error() string {
	return fmt.Sprintf(
		"unexpected kind of slot %s: expected %s, got %s",
		e.Slot.Name(),
		e.Expected,
		e.Slot.Kind(),
	)
}

// UnsupportedVectorElementError is reported when no null value
// exists for a vector with the given element type.
type UnsupportedVectorElementError struct {
	ElementType types.Type
}

var _ errors.InternalError = UnsupportedVectorElementError{}

func (UnsupportedVectorElementError) IsInternalError() {}

func (e UnsupportedVectorElementError) Error() string {
	return fmt.Sprintf("unsupported vector element type: %s", e.ElementType)
}

// DuplicateSlotError is reported when a slot with the same name is added to a layout twice.
type DuplicateSlotError struct {
	Name string
}

var _ errors.InternalError = DuplicateSlotError{}

func (DuplicateSlotError) IsInternalError() {}

func (e DuplicateSlotError) Error() string {
	return fmt.Sprintf("duplicate frame slot: %s", e.Name)
}
