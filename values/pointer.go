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
	"sync"
)

// NativePointer is a raw machine address.
type NativePointer struct {
	Address uint64
}

var _ Value = NativePointer{}
var _ PointerResolvable = NativePointer{}

func NewNativePointer(address uint64) NativePointer {
	return NativePointer{Address: address}
}

// NullPointer is the native null pointer.
var NullPointer = NativePointer{}

func (NativePointer) IsValue() {}

func (p NativePointer) String() string {
	return fmt.Sprintf("0x%x", p.Address)
}

func (p NativePointer) IsNull() bool {
	return p.Address == 0
}

func (NativePointer) IsPointer() bool {
	return true
}

func (p NativePointer) AsPointer() (uint64, error) {
	return p.Address, nil
}

func (p NativePointer) Increment(delta int64) NativePointer {
	return NativePointer{Address: p.Address + uint64(delta)}
}

// ManagedPointer is a reference to a host-managed object, plus a byte offset.
type ManagedPointer struct {
	Object ManagedObject
	Offset int64
}

var _ Value = ManagedPointer{}
var _ PointerResolvable = ManagedPointer{}

func NewManagedPointer(object ManagedObject, offset int64) ManagedPointer {
	return ManagedPointer{
		Object: object,
		Offset: offset,
	}
}

func (ManagedPointer) IsValue() {}

func (p ManagedPointer) String() string {
	return fmt.Sprintf("managed(%v)+%d", p.Object, p.Offset)
}

func (p ManagedPointer) Increment(delta int64) ManagedPointer {
	return ManagedPointer{
		Object: p.Object,
		Offset: p.Offset + delta,
	}
}

// IsPointer returns true if the target object itself has a native address.
func (p ManagedPointer) IsPointer() bool {
	resolvable, ok := p.Object.(PointerResolvable)
	return ok && resolvable.IsPointer()
}

func (p ManagedPointer) AsPointer() (uint64, error) {
	resolvable, ok := p.Object.(PointerResolvable)
	if !ok {
		return 0, UnresolvablePointerError{Value: p}
	}
	address, err := resolvable.AsPointer()
	if err != nil {
		return 0, err
	}
	return address + uint64(p.Offset), nil
}

// VirtualBuffer is an interpreter-private allocation.
type VirtualBuffer struct {
	id   ObjectID
	data []byte
}

var _ ManagedObject = &VirtualBuffer{}

func NewVirtualBuffer(size int) *VirtualBuffer {
	return &VirtualBuffer{
		id:   NewObjectID(),
		data: make([]byte, size),
	}
}

func (b *VirtualBuffer) ObjectID() ObjectID {
	return b.id
}

func (b *VirtualBuffer) Bytes() []byte {
	return b.data
}

func (b *VirtualBuffer) Size() int {
	return len(b.data)
}

func (b *VirtualBuffer) String() string {
	return fmt.Sprintf("buffer#%d[%d]", b.id, len(b.data))
}

// VirtualAllocationAddress is an address into an interpreter-private buffer.
// An address without a buffer is the virtual null address.
type VirtualAllocationAddress struct {
	Buffer *VirtualBuffer
	Offset int64
}

var _ Value = VirtualAllocationAddress{}

func NewVirtualAllocationAddress(buffer *VirtualBuffer, offset int64) VirtualAllocationAddress {
	return VirtualAllocationAddress{
		Buffer: buffer,
		Offset: offset,
	}
}

func (VirtualAllocationAddress) IsValue() {}

func (a VirtualAllocationAddress) String() string {
	if a.IsNull() {
		return fmt.Sprintf("virtual(null)+%d", a.Offset)
	}
	return fmt.Sprintf("virtual(%s)+%d", a.Buffer, a.Offset)
}

func (a VirtualAllocationAddress) IsNull() bool {
	return a.Buffer == nil
}

func (a VirtualAllocationAddress) Increment(delta int64) VirtualAllocationAddress {
	return VirtualAllocationAddress{
		Buffer: a.Buffer,
		Offset: a.Offset + delta,
	}
}

// BoxedPrimitive is a host numeric value used in pointer position.
type BoxedPrimitive struct {
	Value any
}

var _ Value = BoxedPrimitive{}
var _ PointerResolvable = BoxedPrimitive{}

func (BoxedPrimitive) IsValue() {}

func (b BoxedPrimitive) String() string {
	return fmt.Sprintf("boxed(%v)", b.Value)
}

// Integral returns the boxed value as an address-shaped integer,
// if the boxed value is an integer.
func (b BoxedPrimitive) Integral() (uint64, bool) {
	switch value := b.Value.(type) {
	case int:
		return uint64(value), true
	case int8:
		return uint64(value), true
	case int16:
		return uint64(value), true
	case int32:
		return uint64(value), true
	case int64:
		return uint64(value), true
	case uint:
		return uint64(value), true
	case uint8:
		return uint64(value), true
	case uint16:
		return uint64(value), true
	case uint32:
		return uint64(value), true
	case uint64:
		return value, true
	case uintptr:
		return uint64(value), true
	}
	return 0, false
}

func (b BoxedPrimitive) IsPointer() bool {
	_, ok := b.Integral()
	return ok
}

func (b BoxedPrimitive) AsPointer() (uint64, error) {
	address, ok := b.Integral()
	if !ok {
		return 0, UnresolvablePointerError{Value: b}
	}
	return address, nil
}

// Global is a global variable.
// The global may be given a native address, after which it is pointer-resolvable.
type Global struct {
	name    string
	mu      sync.RWMutex
	value   Value
	address *uint64
}

var _ Value = &Global{}
var _ PointerResolvable = &Global{}

func NewGlobal(name string, value Value) *Global {
	return &Global{
		name:  name,
		value: value,
	}
}

func (*Global) IsValue() {}

func (g *Global) String() string {
	return fmt.Sprintf("@%s", g.name)
}

func (g *Global) Name() string {
	return g.name
}

// Read returns the current value stored in the global.
func (g *Global) Read() Value {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value
}

func (g *Global) Write(value Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = value
}

// ToNative assigns the global a native address.
func (g *Global) ToNative(address uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.address = &address
}

func (g *Global) IsPointer() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.address != nil
}

func (g *Global) AsPointer() (uint64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.address == nil {
		return 0, UnresolvablePointerError{Value: g}
	}
	return *g.address, nil
}

// FunctionReference is a value referring to a function.
type FunctionReference interface {
	Value
	PointerResolvable
	FunctionID() uint64
}
