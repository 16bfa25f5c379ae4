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

package types

import (
	"fmt"
	"strings"

	"github.com/onflow/irengine/common"
)

// Type is a static type of the intermediate representation.
//
// Types are shared between functions and definitions.
// Runtime-only refinements (the source-level type used for debugging)
// can be attached to a type, so a type that is refined must be a distinct copy,
// see ShallowCopy.
type Type interface {
	isType()
	String() string
	Equal(other Type) bool
	// ShallowCopy returns a new type object, which is structurally equal to this type,
	// but which does not share its runtime refinements.
	ShallowCopy() Type
	SourceType() *SourceType
	SetSourceType(sourceType *SourceType)
}

// SourceType is the source-level type of a value, as described by debug information.
type SourceType struct {
	Name string
	Size uint64
}

type sourceTypeHolder struct {
	sourceType *SourceType
}

func (h *sourceTypeHolder) SourceType() *SourceType {
	return h.sourceType
}

func (h *sourceTypeHolder) SetSourceType(sourceType *SourceType) {
	h.sourceType = sourceType
}

// Equal returns true if the two given types are structurally equal.
// Nil types are equal to each other.
func Equal(a, b Type) bool {
	return common.DeepEquals[Type, Type, Type](a, b)
}

// PrimitiveKind

type PrimitiveKind uint8

const (
	PrimitiveKindUnknown PrimitiveKind = iota
	I1
	I8
	I16
	I32
	I64
	Half
	Float
	Double
	F128
	X86FP80
	PPCFP128
)

func (k PrimitiveKind) String() string {
	switch k {
	case I1:
		return "i1"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Half:
		return "half"
	case Float:
		return "float"
	case Double:
		return "double"
	case F128:
		return "fp128"
	case X86FP80:
		return "x86_fp80"
	case PPCFP128:
		return "ppc_fp128"
	}
	return fmt.Sprintf("PrimitiveKind(%d)", uint8(k))
}

// BitSize returns the size of a value of the kind, in bits.
func (k PrimitiveKind) BitSize() uint64 {
	switch k {
	case I1:
		return 1
	case I8:
		return 8
	case I16, Half:
		return 16
	case I32, Float:
		return 32
	case I64, Double:
		return 64
	case X86FP80:
		return 80
	case F128, PPCFP128:
		return 128
	}
	return 0
}

func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case I1, I8, I16, I32, I64:
		return true
	}
	return false
}

func (k PrimitiveKind) IsFloatingPoint() bool {
	switch k {
	case Half, Float, Double, F128, X86FP80, PPCFP128:
		return true
	}
	return false
}

// PrimitiveType

type PrimitiveType struct {
	sourceTypeHolder
	Kind PrimitiveKind
}

var _ Type = &PrimitiveType{}

func NewPrimitiveType(kind PrimitiveKind) *PrimitiveType {
	return &PrimitiveType{Kind: kind}
}

var (
	I1Type       = NewPrimitiveType(I1)
	I8Type       = NewPrimitiveType(I8)
	I16Type      = NewPrimitiveType(I16)
	I32Type      = NewPrimitiveType(I32)
	I64Type      = NewPrimitiveType(I64)
	HalfType     = NewPrimitiveType(Half)
	FloatType    = NewPrimitiveType(Float)
	DoubleType   = NewPrimitiveType(Double)
	F128Type     = NewPrimitiveType(F128)
	X86FP80Type  = NewPrimitiveType(X86FP80)
	PPCFP128Type = NewPrimitiveType(PPCFP128)
)

func (*PrimitiveType) isType() {}

func (t *PrimitiveType) String() string {
	return t.Kind.String()
}

func (t *PrimitiveType) Equal(other Type) bool {
	otherPrimitive, ok := other.(*PrimitiveType)
	return ok && otherPrimitive.Kind == t.Kind
}

func (t *PrimitiveType) ShallowCopy() Type {
	result := *t
	return &result
}

// VariableBitWidthType is an integer type with an arbitrary number of bits, e.g. i128.

type VariableBitWidthType struct {
	sourceTypeHolder
	Bits uint32
}

var _ Type = &VariableBitWidthType{}

func NewVariableBitWidthType(bits uint32) *VariableBitWidthType {
	return &VariableBitWidthType{Bits: bits}
}

func (*VariableBitWidthType) isType() {}

func (t *VariableBitWidthType) String() string {
	return fmt.Sprintf("i%d", t.Bits)
}

func (t *VariableBitWidthType) Equal(other Type) bool {
	otherVarBit, ok := other.(*VariableBitWidthType)
	return ok && otherVarBit.Bits == t.Bits
}

func (t *VariableBitWidthType) ShallowCopy() Type {
	result := *t
	return &result
}

// VoidType

type VoidType struct {
	sourceTypeHolder
}

var _ Type = &VoidType{}

var Void = &VoidType{}

func (*VoidType) isType() {}

func (*VoidType) String() string {
	return "void"
}

func (*VoidType) Equal(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (t *VoidType) ShallowCopy() Type {
	result := *t
	return &result
}

// PointerType

type PointerType struct {
	sourceTypeHolder
	PointeeType Type
}

var _ Type = &PointerType{}

func NewPointerType(pointeeType Type) *PointerType {
	return &PointerType{PointeeType: pointeeType}
}

// VoidPointer is the type of untyped pointers, e.g. the stack pointer.
var VoidPointer = NewPointerType(Void)

func (*PointerType) isType() {}

func (t *PointerType) String() string {
	if t.PointeeType == nil {
		return "ptr"
	}
	return t.PointeeType.String() + "*"
}

func (t *PointerType) Equal(other Type) bool {
	otherPointer, ok := other.(*PointerType)
	return ok && Equal(t.PointeeType, otherPointer.PointeeType)
}

func (t *PointerType) ShallowCopy() Type {
	result := *t
	return &result
}

// FunctionType

type FunctionType struct {
	sourceTypeHolder
	ReturnType     Type
	ParameterTypes []Type
	VarArgs        bool
}

var _ Type = &FunctionType{}

func NewFunctionType(returnType Type, varArgs bool, parameterTypes ...Type) *FunctionType {
	return &FunctionType{
		ReturnType:     returnType,
		ParameterTypes: parameterTypes,
		VarArgs:        varArgs,
	}
}

func (*FunctionType) isType() {}

func (t *FunctionType) String() string {
	var sb strings.Builder
	if t.ReturnType == nil {
		sb.WriteString("void")
	} else {
		sb.WriteString(t.ReturnType.String())
	}
	sb.WriteString(" (")
	for i, parameterType := range t.ParameterTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(parameterType.String())
	}
	if t.VarArgs {
		if len(t.ParameterTypes) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *FunctionType) Equal(other Type) bool {
	otherFunction, ok := other.(*FunctionType)
	if !ok ||
		t.VarArgs != otherFunction.VarArgs ||
		len(t.ParameterTypes) != len(otherFunction.ParameterTypes) ||
		!Equal(t.ReturnType, otherFunction.ReturnType) {

		return false
	}

	for i, parameterType := range t.ParameterTypes {
		if !Equal(parameterType, otherFunction.ParameterTypes[i]) {
			return false
		}
	}

	return true
}

func (t *FunctionType) ShallowCopy() Type {
	result := *t
	return &result
}

// VectorType

type VectorType struct {
	sourceTypeHolder
	ElementType Type
	Length      uint64
}

var _ Type = &VectorType{}

func NewVectorType(elementType Type, length uint64) *VectorType {
	return &VectorType{
		ElementType: elementType,
		Length:      length,
	}
}

func (*VectorType) isType() {}

func (t *VectorType) String() string {
	return fmt.Sprintf("<%d x %s>", t.Length, t.ElementType)
}

func (t *VectorType) Equal(other Type) bool {
	otherVector, ok := other.(*VectorType)
	return ok &&
		t.Length == otherVector.Length &&
		Equal(t.ElementType, otherVector.ElementType)
}

func (t *VectorType) ShallowCopy() Type {
	result := *t
	return &result
}

// ArrayType

type ArrayType struct {
	sourceTypeHolder
	ElementType Type
	Length      uint64
}

var _ Type = &ArrayType{}

func NewArrayType(elementType Type, length uint64) *ArrayType {
	return &ArrayType{
		ElementType: elementType,
		Length:      length,
	}
}

func (*ArrayType) isType() {}

func (t *ArrayType) String() string {
	return fmt.Sprintf("[%d x %s]", t.Length, t.ElementType)
}

func (t *ArrayType) Equal(other Type) bool {
	otherArray, ok := other.(*ArrayType)
	return ok &&
		t.Length == otherArray.Length &&
		Equal(t.ElementType, otherArray.ElementType)
}

func (t *ArrayType) ShallowCopy() Type {
	result := *t
	return &result
}

// StructureType

// StructureType is a structure type.
// Named structures may be recursive (through pointers),
// so named structures are equal if their names are equal.
type StructureType struct {
	sourceTypeHolder
	Name         string
	Packed       bool
	ElementTypes []Type
}

var _ Type = &StructureType{}

func NewStructureType(name string, packed bool, elementTypes ...Type) *StructureType {
	return &StructureType{
		Name:         name,
		Packed:       packed,
		ElementTypes: elementTypes,
	}
}

func (*StructureType) isType() {}

func (t *StructureType) String() string {
	if t.Name != "" {
		return "%" + t.Name
	}

	var sb strings.Builder
	if t.Packed {
		sb.WriteString("<")
	}
	sb.WriteString("{")
	for i, elementType := range t.ElementTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elementType.String())
	}
	sb.WriteString("}")
	if t.Packed {
		sb.WriteString(">")
	}
	return sb.String()
}

func (t *StructureType) Equal(other Type) bool {
	otherStructure, ok := other.(*StructureType)
	if !ok ||
		t.Name != otherStructure.Name ||
		t.Packed != otherStructure.Packed {

		return false
	}

	if t.Name != "" {
		return true
	}

	if len(t.ElementTypes) != len(otherStructure.ElementTypes) {
		return false
	}
	for i, elementType := range t.ElementTypes {
		if !Equal(elementType, otherStructure.ElementTypes[i]) {
			return false
		}
	}
	return true
}

func (t *StructureType) ShallowCopy() Type {
	result := *t
	return &result
}

// IsFunctionOrFunctionPointer returns true if the given type is a function type,
// or a pointer to a function type.
func IsFunctionOrFunctionPointer(ty Type) bool {
	switch ty := ty.(type) {
	case *FunctionType:
		return true
	case *PointerType:
		_, ok := ty.PointeeType.(*FunctionType)
		return ok
	}
	return false
}

// IsPrimitiveKind returns true if the given type is a primitive type of the given kind.
func IsPrimitiveKind(ty Type, kind PrimitiveKind) bool {
	primitiveType, ok := ty.(*PrimitiveType)
	return ok && primitiveType.Kind == kind
}
