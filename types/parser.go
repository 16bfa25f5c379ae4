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
	"strconv"
	"strings"

	"github.com/onflow/irengine/errors"
)

// SyntaxError is reported when a type name cannot be parsed.
type SyntaxError struct {
	Text    string
	Offset  int
	Message string
}

var _ errors.UserError = SyntaxError{}

func (SyntaxError) IsUserError() {}

func (e SyntaxError) Error() string {
	return fmt.Sprintf(
		"invalid type %q at offset %d: %s",
		e.Text,
		e.Offset,
		e.Message,
	)
}

// UnknownStructureError is reported when a type name refers to an undeclared structure.
type UnknownStructureError struct {
	Name string
}

var _ errors.UserError = UnknownStructureError{}

func (UnknownStructureError) IsUserError() {}

func (e UnknownStructureError) Error() string {
	return fmt.Sprintf("unknown structure type %%%s", e.Name)
}

// StructureLookup returns the named structure type with the given name.
type StructureLookup func(name string) (*StructureType, bool)

var primitiveTypesByName = map[string]*PrimitiveType{
	"i1":        I1Type,
	"i8":        I8Type,
	"i16":       I16Type,
	"i32":       I32Type,
	"i64":       I64Type,
	"half":      HalfType,
	"float":     FloatType,
	"double":    DoubleType,
	"fp128":     F128Type,
	"x86_fp80":  X86FP80Type,
	"ppc_fp128": PPCFP128Type,
}

// ParseType parses a type in IR notation, e.g. `i64`, `i8*`, `<4 x i32>`,
// `[2 x double]`, `{i32, i64}`, or `%name`. Named structures are resolved with the given lookup.
func ParseType(text string, lookup StructureLookup) (result Type, err error) {
	defer func() {
		errors.Recover(recover(), &err)
	}()

	p := &typeParser{
		text:   text,
		lookup: lookup,
	}

	result = p.parseType()

	p.skipSpace()
	if !p.atEnd() {
		p.fail("unexpected trailing input")
	}

	return result, nil
}

type typeParser struct {
	text   string
	offset int
	lookup StructureLookup
}

func (p *typeParser) fail(format string, args ...any) {
	panic(SyntaxError{
		Text:    p.text,
		Offset:  p.offset,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *typeParser) atEnd() bool {
	return p.offset >= len(p.text)
}

func (p *typeParser) current() byte {
	if p.atEnd() {
		return 0
	}
	return p.text[p.offset]
}

func (p *typeParser) skipSpace() {
	for !p.atEnd() && p.current() == ' ' {
		p.offset++
	}
}

func (p *typeParser) accept(token string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.text[p.offset:], token) {
		p.offset += len(token)
		return true
	}
	return false
}

func (p *typeParser) expect(token string) {
	if !p.accept(token) {
		p.fail("expected %q", token)
	}
}

func isIdentifierCharacter(c byte) bool {
	return c == '_' || c == '.' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func (p *typeParser) identifier() string {
	p.skipSpace()
	start := p.offset
	for !p.atEnd() && isIdentifierCharacter(p.current()) {
		p.offset++
	}
	return p.text[start:p.offset]
}

func (p *typeParser) number() uint64 {
	p.skipSpace()
	start := p.offset
	for !p.atEnd() && '0' <= p.current() && p.current() <= '9' {
		p.offset++
	}
	if start == p.offset {
		p.fail("expected number")
	}
	value, err := strconv.ParseUint(p.text[start:p.offset], 10, 64)
	if err != nil {
		p.offset = start
		p.fail("invalid number: %s", err)
	}
	return value
}

func (p *typeParser) parseType() Type {
	result := p.parseBaseType()

	for p.accept("*") {
		result = NewPointerType(result)
	}

	return result
}

func (p *typeParser) parseBaseType() Type {
	switch {
	case p.accept("<{"):
		elementTypes := p.parseTypeList("}>")
		return NewStructureType("", true, elementTypes...)

	case p.accept("<"):
		length := p.number()
		p.expect("x")
		elementType := p.parseType()
		p.expect(">")
		return NewVectorType(elementType, length)

	case p.accept("["):
		length := p.number()
		p.expect("x")
		elementType := p.parseType()
		p.expect("]")
		return NewArrayType(elementType, length)

	case p.accept("{"):
		elementTypes := p.parseTypeList("}")
		return NewStructureType("", false, elementTypes...)

	case p.accept("%"):
		name := p.identifier()
		if name == "" {
			p.fail("expected structure name")
		}
		if p.lookup != nil {
			if structure, ok := p.lookup(name); ok {
				return structure
			}
		}
		panic(UnknownStructureError{Name: name})
	}

	start := p.offset
	name := p.identifier()

	switch name {
	case "":
		p.fail("expected type")
	case "void":
		return Void
	case "ptr":
		return VoidPointer
	}

	if primitiveType, ok := primitiveTypesByName[name]; ok {
		return primitiveType
	}

	if strings.HasPrefix(name, "i") {
		bits, err := strconv.ParseUint(name[1:], 10, 32)
		if err == nil && bits > 0 {
			return NewVariableBitWidthType(uint32(bits))
		}
	}

	p.offset = start
	p.fail("unknown type %s", name)
	panic(errors.NewUnreachableError())
}

func (p *typeParser) parseTypeList(end string) []Type {
	var result []Type

	if p.accept(end) {
		return result
	}

	for {
		result = append(result, p.parseType())
		if p.accept(end) {
			return result
		}
		p.expect(",")
	}
}
