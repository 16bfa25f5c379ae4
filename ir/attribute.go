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

package ir

import (
	"fmt"
	"strings"

	"github.com/SaveTheRbtz/mph"
)

// AttributeKind is the kind of a known parameter or function attribute.
type AttributeKind uint8

const (
	AttributeKindNone AttributeKind = iota
	AttributeKindAlign
	AttributeKindAlwaysInline
	AttributeKindByVal
	AttributeKindInlineHint
	AttributeKindInReg
	AttributeKindMinSize
	AttributeKindNaked
	AttributeKindNest
	AttributeKindNoAlias
	AttributeKindNoBuiltin
	AttributeKindNoCapture
	AttributeKindNoDuplicates
	AttributeKindNoImplicitFloat
	AttributeKindNoInline
	AttributeKindNonLazyBind
	AttributeKindNoRedZone
	AttributeKindNoReturn
	AttributeKindNoUnwind
	AttributeKindOptSize
	AttributeKindReadNone
	AttributeKindReadOnly
	AttributeKindReturned
	AttributeKindReturnsTwice
	AttributeKindSignExt
	AttributeKindAlignStack
	AttributeKindSSP
	AttributeKindSSPReq
	AttributeKindSSPStrong
	AttributeKindSRet
	AttributeKindSanitizeAddress
	AttributeKindSanitizeThread
	AttributeKindSanitizeMemory
	AttributeKindUWTable
	AttributeKindZeroExt
	AttributeKindBuiltin
	AttributeKindCold
	AttributeKindOptNone
	AttributeKindInAlloca
	AttributeKindNonNull
	AttributeKindJumpTable
	AttributeKindDereferenceable
	AttributeKindDereferenceableOrNull
	AttributeKindConvergent
	AttributeKindSafeStack
	AttributeKindArgMemOnly
	AttributeKindSwiftSelf
	AttributeKindSwiftError
	AttributeKindNoRecurse
	AttributeKindInaccessibleMemOnly
	AttributeKindInaccessibleMemOrArgMemOnly
	AttributeKindAllocSize
	AttributeKindWriteOnly
	AttributeKindSpeculatable

	// NOTE: keep last
	attributeKindCount
)

var attributeKindNames = [...]string{
	AttributeKindNone:                        "none",
	AttributeKindAlign:                       "align",
	AttributeKindAlwaysInline:                "alwaysinline",
	AttributeKindByVal:                       "byval",
	AttributeKindInlineHint:                  "inlinehint",
	AttributeKindInReg:                       "inreg",
	AttributeKindMinSize:                     "minsize",
	AttributeKindNaked:                       "naked",
	AttributeKindNest:                        "nest",
	AttributeKindNoAlias:                     "noalias",
	AttributeKindNoBuiltin:                   "nobuiltin",
	AttributeKindNoCapture:                   "nocapture",
	AttributeKindNoDuplicates:                "noduplicates",
	AttributeKindNoImplicitFloat:             "noimplicitfloat",
	AttributeKindNoInline:                    "noinline",
	AttributeKindNonLazyBind:                 "nonlazybind",
	AttributeKindNoRedZone:                   "noredzone",
	AttributeKindNoReturn:                    "noreturn",
	AttributeKindNoUnwind:                    "nounwind",
	AttributeKindOptSize:                     "optsize",
	AttributeKindReadNone:                    "readnone",
	AttributeKindReadOnly:                    "readonly",
	AttributeKindReturned:                    "returned",
	AttributeKindReturnsTwice:                "returns_twice",
	AttributeKindSignExt:                     "signext",
	AttributeKindAlignStack:                  "alignstack",
	AttributeKindSSP:                         "ssp",
	AttributeKindSSPReq:                      "sspreq",
	AttributeKindSSPStrong:                   "sspstrong",
	AttributeKindSRet:                        "sret",
	AttributeKindSanitizeAddress:             "sanitize_address",
	AttributeKindSanitizeThread:              "sanitize_thread",
	AttributeKindSanitizeMemory:              "sanitize_memory",
	AttributeKindUWTable:                     "uwtable",
	AttributeKindZeroExt:                     "zeroext",
	AttributeKindBuiltin:                     "builtin",
	AttributeKindCold:                        "cold",
	AttributeKindOptNone:                     "optnone",
	AttributeKindInAlloca:                    "inalloca",
	AttributeKindNonNull:                     "nonnull",
	AttributeKindJumpTable:                   "jumptable",
	AttributeKindDereferenceable:             "dereferenceable",
	AttributeKindDereferenceableOrNull:       "dereferenceable_or_null",
	AttributeKindConvergent:                  "convergent",
	AttributeKindSafeStack:                   "safestack",
	AttributeKindArgMemOnly:                  "argmemonly",
	AttributeKindSwiftSelf:                   "swiftself",
	AttributeKindSwiftError:                  "swifterror",
	AttributeKindNoRecurse:                   "norecurse",
	AttributeKindInaccessibleMemOnly:         "inaccessiblememonly",
	AttributeKindInaccessibleMemOrArgMemOnly: "inaccessiblemem_or_argmemonly",
	AttributeKindAllocSize:                   "allocsize",
	AttributeKindWriteOnly:                   "writeonly",
	AttributeKindSpeculatable:                "speculatable",
}

// DecodeAttributeKind returns the attribute kind with the given record ID.
// Unknown IDs decode to AttributeKindNone.
func DecodeAttributeKind(id uint64) AttributeKind {
	if id > 0 && id < uint64(attributeKindCount) {
		return AttributeKind(id)
	}
	return AttributeKindNone
}

var attributeKindsTable = mph.Build(attributeKindNames[:])

// ParseAttributeKind returns the attribute kind with the given IR spelling.
func ParseAttributeKind(name string) (AttributeKind, bool) {
	index, ok := attributeKindsTable.Lookup(name)
	if !ok || index == uint32(AttributeKindNone) {
		return AttributeKindNone, false
	}
	return AttributeKind(index), true
}

func (k AttributeKind) String() string {
	if k < attributeKindCount {
		return attributeKindNames[k]
	}
	return fmt.Sprintf("AttributeKind(%d)", uint8(k))
}

// Attribute is a function or parameter attribute.
type Attribute interface {
	isAttribute()
	IRString() string
}

// KnownAttribute is an attribute of a known kind, without a value, e.g. `byval`.
type KnownAttribute struct {
	Kind AttributeKind
}

var _ Attribute = KnownAttribute{}

func (KnownAttribute) isAttribute() {}

func (a KnownAttribute) IRString() string {
	return a.Kind.String()
}

// KnownIntegerValueAttribute is an attribute of a known kind with an integer value, e.g. `align 8`.
type KnownIntegerValueAttribute struct {
	Kind  AttributeKind
	Value int64
}

var _ Attribute = KnownIntegerValueAttribute{}

func (KnownIntegerValueAttribute) isAttribute() {}

func (a KnownIntegerValueAttribute) IRString() string {
	if a.Kind == AttributeKindAlign {
		return fmt.Sprintf("%s %d", a.Kind, a.Value)
	}
	return fmt.Sprintf("%s(%d)", a.Kind, a.Value)
}

// StringAttribute is a target-dependent attribute, e.g. `"no-frame-pointer-elim"`.
type StringAttribute struct {
	Name string
}

var _ Attribute = StringAttribute{}

func (StringAttribute) isAttribute() {}

func (a StringAttribute) IRString() string {
	return fmt.Sprintf("%q", a.Name)
}

// StringValueAttribute is a target-dependent attribute with a value, e.g. `"target-cpu"="x86-64"`.
type StringValueAttribute struct {
	Name  string
	Value string
}

var _ Attribute = StringValueAttribute{}

func (StringValueAttribute) isAttribute() {}

func (a StringValueAttribute) IRString() string {
	return fmt.Sprintf("%q=%q", a.Name, a.Value)
}

// AttributeGroup is the set of attributes of a function, its return value, or a parameter.
type AttributeGroup []Attribute

// HasKind returns true if the group contains a known attribute of the given kind.
func (g AttributeGroup) HasKind(kind AttributeKind) bool {
	for _, attribute := range g {
		switch attribute := attribute.(type) {
		case KnownAttribute:
			if attribute.Kind == kind {
				return true
			}
		case KnownIntegerValueAttribute:
			if attribute.Kind == kind {
				return true
			}
		}
	}
	return false
}

func (g AttributeGroup) IRString() string {
	parts := make([]string, 0, len(g))
	for _, attribute := range g {
		parts = append(parts, attribute.IRString())
	}
	return strings.Join(parts, " ")
}
