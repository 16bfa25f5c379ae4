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
	"fmt"
	"reflect"

	"github.com/onflow/irengine/types"
)

// HostObject adapts an arbitrary host object, so it can be referenced by managed pointers.
// Host objects are compared by the identity of their target.
type HostObject struct {
	id     ObjectID
	Target any
}

var _ ManagedObject = &HostObject{}

func NewHostObject(target any) *HostObject {
	return &HostObject{
		id:     NewObjectID(),
		Target: target,
	}
}

func (o *HostObject) ObjectID() ObjectID {
	return o.id
}

func (o *HostObject) String() string {
	return fmt.Sprintf("host(%v)", o.Target)
}

// SameTarget returns true if both host objects wrap the same target.
func (o *HostObject) SameTarget(other *HostObject) bool {
	if o == other {
		return true
	}
	return identical(o.Target, other.Target)
}

func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	typ := reflect.TypeOf(a)
	if typ != reflect.TypeOf(b) || !typ.Comparable() {
		return false
	}
	return a == b
}

// TypedForeignObject wraps a foreign object and attaches a type to it.
type TypedForeignObject struct {
	id      ObjectID
	Foreign ManagedObject
	Type    types.Type
}

var _ ManagedObject = &TypedForeignObject{}
var _ PointerResolvable = &TypedForeignObject{}

func NewTypedForeignObject(foreign ManagedObject, ty types.Type) *TypedForeignObject {
	return &TypedForeignObject{
		id:      NewObjectID(),
		Foreign: foreign,
		Type:    ty,
	}
}

func (o *TypedForeignObject) ObjectID() ObjectID {
	return o.id
}

func (o *TypedForeignObject) String() string {
	return fmt.Sprintf("typed(%v, %s)", o.Foreign, o.Type)
}

// IsPointer returns true if the wrapped object has a native address.
func (o *TypedForeignObject) IsPointer() bool {
	resolvable, ok := o.Foreign.(PointerResolvable)
	return ok && resolvable.IsPointer()
}

func (o *TypedForeignObject) AsPointer() (uint64, error) {
	resolvable, ok := o.Foreign.(PointerResolvable)
	if !ok {
		return 0, UnresolvablePointerError{Value: NewManagedPointer(o, 0)}
	}
	return resolvable.AsPointer()
}

// unwrapForeign strips one layer of typed foreign object wrapping.
func unwrapForeign(object ManagedObject) ManagedObject {
	if typed, ok := object.(*TypedForeignObject); ok {
		return typed.Foreign
	}
	return object
}

// foreignEquals compares the targets of two managed pointers.
func foreignEquals(a, b ManagedObject) bool {
	a = unwrapForeign(a)
	b = unwrapForeign(b)

	hostA, ok := a.(*HostObject)
	if ok {
		hostB, ok := b.(*HostObject)
		return ok && hostA.SameTarget(hostB)
	}

	return identical(a, b)
}

// identityKey returns the identity surrogate of a managed object.
// Host objects get one key per wrapper, so pointers into equal host objects
// are ordered by their offsets only (see Compare).
func identityKey(object ManagedObject) uint64 {
	return uint64(unwrapForeign(object).ObjectID())
}
