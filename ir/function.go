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

// Package ir contains the decoded form of functions, as consumed by the execution core:
// parameters, basic blocks, and the instructions of each block.
//
// Decoding the program representation into this form is done elsewhere.
package ir

import (
	"github.com/onflow/irengine/types"
)

// FunctionDefinition is a function with a body.
type FunctionDefinition struct {
	Name       string
	Type       *types.FunctionType
	Parameters []*FunctionParameter
	Blocks     []*InstructionBlock
	// SourceType is the source-level type of the function, if debug information is available.
	SourceType *types.SourceType
}

// ReturnsStructure returns true if the function returns a structure.
// Such functions receive an additional, hidden argument for the return value.
func (f *FunctionDefinition) ReturnsStructure() bool {
	if f.Type == nil {
		return false
	}
	_, ok := f.Type.ReturnType.(*types.StructureType)
	return ok
}

// ForEachValueInstruction calls the given function for each value-producing instruction,
// in program order.
func (f *FunctionDefinition) ForEachValueInstruction(fn func(block *InstructionBlock, instruction *ValueInstruction)) {
	for _, block := range f.Blocks {
		for _, instruction := range block.Instructions {
			valueInstruction := instruction.AsValueInstruction()
			if valueInstruction == nil {
				continue
			}
			fn(block, valueInstruction)
		}
	}
}

// FunctionParameter is a formal parameter of a function.
type FunctionParameter struct {
	Name       string
	Type       types.Type
	Attributes AttributeGroup
	// SourceVariable is true if the parameter is visible to a debugger.
	SourceVariable bool
}

// IsStructByValue returns true if the parameter is a pointer to a structure,
// which is passed by value (i.e. copied by the callee).
func (p *FunctionParameter) IsStructByValue() bool {
	if _, ok := p.Type.(*types.PointerType); !ok {
		return false
	}
	return p.Attributes.HasKind(AttributeKindByVal)
}

// InstructionBlock is a basic block.
type InstructionBlock struct {
	// Index is the index of the block in its function.
	Index        int
	Name         string
	Instructions []Instruction
}

// Terminator returns the last instruction of the block, if any.
func (b *InstructionBlock) Terminator() Instruction {
	count := len(b.Instructions)
	if count == 0 {
		return nil
	}
	return b.Instructions[count-1]
}

// Instruction

type Instruction interface {
	isInstruction()
	// AsValueInstruction returns the value-producing part of the instruction,
	// or nil, if the instruction does not produce a value.
	AsValueInstruction() *ValueInstruction
}

// ValueInstruction is an instruction which produces a value, e.g. `%c = add i64 %a, %b`.
type ValueInstruction struct {
	// Name is the identifier of the result.
	Name     string
	Type     types.Type
	Opcode   string
	Operands []string
	// SourceVariable is true if the result is visible to a debugger.
	SourceVariable bool
}

var _ Instruction = &ValueInstruction{}

func (*ValueInstruction) isInstruction() {}

func (i *ValueInstruction) AsValueInstruction() *ValueInstruction {
	return i
}

// PhiIncoming is the value a phi node takes when control arrives from a predecessor.
type PhiIncoming struct {
	Block *InstructionBlock
	Value string
}

// PhiInstruction is a phi node.
type PhiInstruction struct {
	ValueInstruction
	Incoming []PhiIncoming
}

var _ Instruction = &PhiInstruction{}

func (i *PhiInstruction) AsValueInstruction() *ValueInstruction {
	return &i.ValueInstruction
}

// ControlInstruction is an instruction which does not produce a value,
// e.g. a branch, a store, or a return.
type ControlInstruction struct {
	Opcode   string
	Operands []string
	// Successors are the blocks control may be transferred to.
	Successors []*InstructionBlock
}

var _ Instruction = &ControlInstruction{}

func (*ControlInstruction) isInstruction() {}

func (*ControlInstruction) AsValueInstruction() *ValueInstruction {
	return nil
}
