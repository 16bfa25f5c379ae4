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

// Package values implements the runtime representation of values,
// in particular of pointer-like values, and their comparison.
//
// The pointer space is heterogeneous: a pointer is either a raw native address,
// a reference into a host-managed object, or an address into an interpreter-private buffer.
package values

import (
	"fmt"
	"sync/atomic"
)

// Value is a runtime value.
type Value interface {
	IsValue()
	String() string
}

// ObjectID is a stable identity of a managed object.
//
// An object is assigned its ID when it is allocated, and keeps it for its lifetime.
// IDs are never reused, so two distinct objects never share an ID.
type ObjectID uint64

var objectIDCounter atomic.Uint64

// NewObjectID allocates a new, process-unique object ID.
func NewObjectID() ObjectID {
	return ObjectID(objectIDCounter.Add(1))
}

// ManagedObject is an object owned by the host, which can be referenced by managed pointers.
type ManagedObject interface {
	ObjectID() ObjectID
}

// PointerResolvable is implemented by values which may be convertible to a native address.
type PointerResolvable interface {
	// IsPointer returns true if the value currently has a native address.
	IsPointer() bool
	// AsPointer returns the native address of the value.
	AsPointer() (uint64, error)
}

// Scalars

type I1 bool

var _ Value = I1(false)

func (I1) IsValue() {}

func (v I1) String() string {
	return fmt.Sprint(bool(v))
}

type I8 int8

var _ Value = I8(0)

func (I8) IsValue() {}

func (v I8) String() string {
	return fmt.Sprint(int8(v))
}

type I16 int16

var _ Value = I16(0)

func (I16) IsValue() {}

func (v I16) String() string {
	return fmt.Sprint(int16(v))
}

type I32 int32

var _ Value = I32(0)

func (I32) IsValue() {}

func (v I32) String() string {
	return fmt.Sprint(int32(v))
}

type I64 int64

var _ Value = I64(0)

func (I64) IsValue() {}

func (v I64) String() string {
	return fmt.Sprint(int64(v))
}

type Float float32

var _ Value = Float(0)

func (Float) IsValue() {}

func (v Float) String() string {
	return fmt.Sprint(float32(v))
}

type Double float64

var _ Value = Double(0)

func (Double) IsValue() {}

func (v Double) String() string {
	return fmt.Sprint(float64(v))
}
