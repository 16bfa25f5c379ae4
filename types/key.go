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
	"github.com/fxamacker/cbor/v2"

	"github.com/onflow/irengine/errors"
)

// TypeKey is a canonical, comparable representation of a type.
// Structurally equal types have equal keys.
type TypeKey string

type encodedTypeKind uint8

const (
	encodedTypeKindUnknown encodedTypeKind = iota
	encodedTypeKindPrimitive
	encodedTypeKindVariableBitWidth
	encodedTypeKindVoid
	encodedTypeKindPointer
	encodedTypeKindFunction
	encodedTypeKindVector
	encodedTypeKindArray
	encodedTypeKindStructure
	encodedTypeKindNamedStructure
)

// encodedType is the CBOR representation of a type.
// Fields are encoded as an array, to keep keys small.
type encodedType struct {
	_        struct{} `cbor:",toarray"`
	Kind     encodedTypeKind
	Subkind  uint64
	Name     string
	Flag     bool
	Elements []encodedType
}

var keyEncMode = func() cbor.EncMode {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// Key returns the canonical key of the given type.
// The key is the deterministic CBOR encoding of the type's structure.
func Key(ty Type) (TypeKey, error) {
	encoded := keyEncoder{}.encode(ty)

	data, err := keyEncMode.Marshal(encoded)
	if err != nil {
		return "", err
	}
	return TypeKey(data), nil
}

// MustKey is like Key, but panics if the type cannot be encoded.
func MustKey(ty Type) TypeKey {
	key, err := Key(ty)
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return key
}

type keyEncoder struct{}

func (e keyEncoder) encodeAll(types []Type) []encodedType {
	if len(types) == 0 {
		return nil
	}
	result := make([]encodedType, 0, len(types))
	for _, ty := range types {
		result = append(result, e.encode(ty))
	}
	return result
}

func (e keyEncoder) encodeOne(ty Type) []encodedType {
	return []encodedType{e.encode(ty)}
}

func (e keyEncoder) encode(ty Type) encodedType {
	switch ty := ty.(type) {
	case nil:
		return encodedType{Kind: encodedTypeKindUnknown}

	case *PrimitiveType:
		return encodedType{
			Kind:    encodedTypeKindPrimitive,
			Subkind: uint64(ty.Kind),
		}

	case *VariableBitWidthType:
		return encodedType{
			Kind:    encodedTypeKindVariableBitWidth,
			Subkind: uint64(ty.Bits),
		}

	case *VoidType:
		return encodedType{Kind: encodedTypeKindVoid}

	case *PointerType:
		return encodedType{
			Kind:     encodedTypeKindPointer,
			Elements: e.encodeOne(ty.PointeeType),
		}

	case *FunctionType:
		return encodedType{
			Kind: encodedTypeKindFunction,
			Flag: ty.VarArgs,
			Elements: append(
				e.encodeOne(ty.ReturnType),
				e.encodeAll(ty.ParameterTypes)...,
			),
		}

	case *VectorType:
		return encodedType{
			Kind:     encodedTypeKindVector,
			Subkind:  ty.Length,
			Elements: e.encodeOne(ty.ElementType),
		}

	case *ArrayType:
		return encodedType{
			Kind:     encodedTypeKindArray,
			Subkind:  ty.Length,
			Elements: e.encodeOne(ty.ElementType),
		}

	case *StructureType:
		if ty.Name != "" {
			// Named structures may be recursive,
			// and are identified by name, see StructureType.Equal
			return encodedType{
				Kind: encodedTypeKindNamedStructure,
				Name: ty.Name,
				Flag: ty.Packed,
			}
		}
		return encodedType{
			Kind:     encodedTypeKindStructure,
			Name:     ty.Name,
			Flag:     ty.Packed,
			Elements: e.encodeAll(ty.ElementTypes),
		}

	default:
		panic(errors.NewUnexpectedError("cannot encode type: %T", ty))
	}
}
