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
	"math/big"
	"strings"
)

// IVarBit is an integer of arbitrary bit width.
type IVarBit struct {
	Bits  uint32
	Value *big.Int
}

var _ Value = IVarBit{}

func NewIVarBit(bits uint32, value *big.Int) IVarBit {
	return IVarBit{
		Bits:  bits,
		Value: new(big.Int).Set(value),
	}
}

// NullIVarBit returns the null arbitrary-width integer, which has no bits.
func NullIVarBit() IVarBit {
	return IVarBit{
		Value: new(big.Int),
	}
}

func (IVarBit) IsValue() {}

func (v IVarBit) String() string {
	if v.Value == nil {
		return fmt.Sprintf("i%d 0", v.Bits)
	}
	return fmt.Sprintf("i%d %s", v.Bits, v.Value)
}

func (v IVarBit) IsNull() bool {
	return v.Bits == 0
}

// Float80 is an x86 80-bit extended precision floating point number.
type Float80 struct {
	Sign     bool
	Exponent uint16
	Fraction uint64
}

var _ Value = Float80{}

func NewFloat80(sign bool, exponent uint16, fraction uint64) Float80 {
	return Float80{
		Sign:     sign,
		Exponent: exponent,
		Fraction: fraction,
	}
}

func (Float80) IsValue() {}

func (v Float80) String() string {
	sign := 0
	if v.Sign {
		sign = 1
	}
	return fmt.Sprintf("0xK%01x%04x%016x", sign, v.Exponent, v.Fraction)
}

func (v Float80) IsZero() bool {
	return v.Exponent == 0 && v.Fraction == 0
}

// Vectors

type I1Vector []bool

type I8Vector []int8

type I16Vector []int16

type I32Vector []int32

type I64Vector []int64

type FloatVector []float32

type DoubleVector []float64

// PointerVector is a vector of pointer values.
type PointerVector []Value

var _ Value = I1Vector{}
var _ Value = I8Vector{}
var _ Value = I16Vector{}
var _ Value = I32Vector{}
var _ Value = I64Vector{}
var _ Value = FloatVector{}
var _ Value = DoubleVector{}
var _ Value = PointerVector{}

func (I1Vector) IsValue()      {}
func (I8Vector) IsValue()      {}
func (I16Vector) IsValue()     {}
func (I32Vector) IsValue()     {}
func (I64Vector) IsValue()     {}
func (FloatVector) IsValue()   {}
func (DoubleVector) IsValue()  {}
func (PointerVector) IsValue() {}

func (v I1Vector) String() string {
	return formatVector("i1", v)
}

func (v I8Vector) String() string {
	return formatVector("i8", v)
}

func (v I16Vector) String() string {
	return formatVector("i16", v)
}

func (v I32Vector) String() string {
	return formatVector("i32", v)
}

func (v I64Vector) String() string {
	return formatVector("i64", v)
}

func (v FloatVector) String() string {
	return formatVector("float", v)
}

func (v DoubleVector) String() string {
	return formatVector("double", v)
}

func (v PointerVector) String() string {
	return formatVector("ptr", v)
}

func formatVector[T any](elementType string, elements []T) string {
	var builder strings.Builder
	builder.WriteByte('<')
	for i, element := range elements {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%s %v", elementType, element)
	}
	builder.WriteByte('>')
	return builder.String()
}

// NullPointerVector returns a vector of the given length, containing only null pointers.
func NullPointerVector(length int) PointerVector {
	vector := make(PointerVector, length)
	for i := range vector {
		vector[i] = NullPointer
	}
	return vector
}
