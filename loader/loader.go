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

// Package loader loads modules from their YAML descriptions.
package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/vm"
)

var controlOpcodes = map[string]struct{}{
	"ret":         {},
	"br":          {},
	"switch":      {},
	"indirectbr":  {},
	"resume":      {},
	"unreachable": {},
}

const phiOpcode = "phi"

// Load decodes the YAML description of a module, and loads the module.
func Load(data []byte) (*vm.Module, error) {
	var description ModuleDescription
	err := yaml.UnmarshalWithOptions(data, &description, yaml.Strict())
	if err != nil {
		return nil, DecodingError{Err: err}
	}
	return NewModule(&description)
}

// LoadFile loads the module described by the given YAML file.
func LoadFile(path string) (*vm.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDefaultUserError("cannot read module: %w", err)
	}
	return Load(data)
}

// NewModule loads the module with the given description.
func NewModule(description *ModuleDescription) (module *vm.Module, err error) {
	defer func() {
		errors.Recover(recover(), &err)
	}()

	loader := &moduleLoader{
		structs: map[string]*types.StructureType{},
	}

	loader.declareStructures(description.Structs)

	functions := make([]*ir.FunctionDefinition, 0, len(description.Functions))
	functionNames := map[string]struct{}{}

	for _, functionDescription := range description.Functions {
		name := functionDescription.Name
		if _, ok := functionNames[name]; ok {
			panic(DuplicateNameError{
				Kind: "function",
				Name: name,
			})
		}
		functionNames[name] = struct{}{}

		functions = append(functions, loader.function(functionDescription))
	}

	return &vm.Module{
		Name:      description.Name,
		Functions: functions,
	}, nil
}

type moduleLoader struct {
	structs map[string]*types.StructureType
}

func (l *moduleLoader) lookupStructure(name string) (*types.StructureType, bool) {
	structure, ok := l.structs[name]
	return structure, ok
}

func (l *moduleLoader) parseType(location string, text string) types.Type {
	ty, err := types.ParseType(text, l.lookupStructure)
	if err != nil {
		panic(DescriptionError{
			Location: location,
			Err:      err,
		})
	}
	return ty
}

// declareStructures declares all named structures before resolving their elements,
// so structures may refer to each other.
func (l *moduleLoader) declareStructures(descriptions []StructureDescription) {
	for _, description := range descriptions {
		if _, ok := l.structs[description.Name]; ok {
			panic(DuplicateNameError{
				Kind: "structure",
				Name: description.Name,
			})
		}
		l.structs[description.Name] = types.NewStructureType(description.Name, description.Packed)
	}

	for _, description := range descriptions {
		structure := l.structs[description.Name]
		location := fmt.Sprintf("structure %s", description.Name)

		elementTypes := make([]types.Type, 0, len(description.Elements))
		for _, element := range description.Elements {
			elementTypes = append(elementTypes, l.parseType(location, element))
		}
		structure.ElementTypes = elementTypes
	}
}

type functionLoader struct {
	*moduleLoader
	name          string
	blocks        map[string]*ir.InstructionBlock
	unnamedValues int
}

func (l *functionLoader) location(format string, args ...any) string {
	return fmt.Sprintf("function %s, ", l.name) + fmt.Sprintf(format, args...)
}

// valueName returns the name of a parameter or instruction result.
// Unnamed values are numbered.
func (l *functionLoader) valueName(name string) string {
	if name != "" {
		return name
	}
	name = strconv.Itoa(l.unnamedValues)
	l.unnamedValues++
	return name
}

func (l *functionLoader) block(location string, name string) *ir.InstructionBlock {
	block, ok := l.blocks[name]
	if !ok {
		panic(DescriptionError{
			Location: location,
			Err:      UnknownBlockError{Name: name},
		})
	}
	return block
}

func (l *moduleLoader) function(description FunctionDescription) *ir.FunctionDefinition {
	loader := &functionLoader{
		moduleLoader: l,
		name:         description.Name,
		blocks:       map[string]*ir.InstructionBlock{},
	}

	returnType := types.Type(types.Void)
	if description.Return != "" {
		returnType = l.parseType(loader.location("return type"), description.Return)
	}

	parameters := make([]*ir.FunctionParameter, 0, len(description.Parameters))
	parameterTypes := make([]types.Type, 0, len(description.Parameters))

	for index, parameterDescription := range description.Parameters {
		parameterType := l.parseType(
			loader.location("parameter %d", index),
			parameterDescription.Type,
		)
		parameterTypes = append(parameterTypes, parameterType)

		attributes := make(ir.AttributeGroup, 0, len(parameterDescription.Attributes))
		for _, attribute := range parameterDescription.Attributes {
			attributes = append(attributes, parseAttribute(attribute))
		}

		parameters = append(parameters, &ir.FunctionParameter{
			Name:           loader.valueName(parameterDescription.Name),
			Type:           parameterType,
			Attributes:     attributes,
			SourceVariable: parameterDescription.Source,
		})
	}

	definition := &ir.FunctionDefinition{
		Name:       description.Name,
		Type:       types.NewFunctionType(returnType, description.VarArgs, parameterTypes...),
		Parameters: parameters,
	}

	if description.Source != "" {
		definition.SourceType = &types.SourceType{
			Name: description.Source,
		}
	}

	// blocks are declared first, so branches and phis may refer to later blocks

	blocks := make([]*ir.InstructionBlock, 0, len(description.Blocks))
	for index, blockDescription := range description.Blocks {
		if _, ok := loader.blocks[blockDescription.Name]; ok {
			panic(DescriptionError{
				Location: loader.location("block %d", index),
				Err: DuplicateNameError{
					Kind: "block",
					Name: blockDescription.Name,
				},
			})
		}

		block := &ir.InstructionBlock{
			Index: index,
			Name:  blockDescription.Name,
		}
		loader.blocks[block.Name] = block
		blocks = append(blocks, block)
	}

	for index, blockDescription := range description.Blocks {
		block := blocks[index]

		block.Instructions = make([]ir.Instruction, 0, len(blockDescription.Instructions))
		for instructionIndex, instructionDescription := range blockDescription.Instructions {
			location := loader.location("block %s, instruction %d", block.Name, instructionIndex)
			block.Instructions = append(
				block.Instructions,
				loader.instruction(location, instructionDescription),
			)
		}
	}

	definition.Blocks = blocks

	return definition
}

func (l *functionLoader) instruction(location string, description InstructionDescription) ir.Instruction {
	opcode := description.Opcode

	if _, ok := controlOpcodes[opcode]; ok {
		successors := make([]*ir.InstructionBlock, 0, len(description.Successors))
		for _, successor := range description.Successors {
			successors = append(successors, l.block(location, successor))
		}

		if opcode == "br" && len(successors) == 0 {
			panic(DescriptionError{
				Location: location,
				Err:      MissingOperandError{Opcode: opcode},
			})
		}

		return &ir.ControlInstruction{
			Opcode:     opcode,
			Operands:   description.Operands,
			Successors: successors,
		}
	}

	resultType := types.Type(types.Void)
	if description.Type != "" {
		resultType = l.parseType(location, description.Type)
	}

	valueInstruction := ir.ValueInstruction{
		Name:           l.valueName(description.Name),
		Type:           resultType,
		Opcode:         opcode,
		Operands:       description.Operands,
		SourceVariable: description.Source,
	}

	if opcode != phiOpcode {
		if opcode == "call" && len(description.Operands) == 0 {
			panic(DescriptionError{
				Location: location,
				Err:      MissingOperandError{Opcode: opcode},
			})
		}
		return &valueInstruction
	}

	incoming := make([]ir.PhiIncoming, 0, len(description.Incoming))
	for _, incomingDescription := range description.Incoming {
		incoming = append(incoming, ir.PhiIncoming{
			Block: l.block(location, incomingDescription.Block),
			Value: incomingDescription.Value,
		})
	}

	return &ir.PhiInstruction{
		ValueInstruction: valueInstruction,
		Incoming:         incoming,
	}
}

// parseAttribute parses an attribute in one of the forms
// `name`, `name(value)`, `align value`, or `name=value`.
func parseAttribute(text string) ir.Attribute {
	name, value, hasValue := strings.Cut(text, "=")

	if !hasValue {
		if open := strings.IndexByte(text, '('); open > 0 && strings.HasSuffix(text, ")") {
			name, value, hasValue = text[:open], text[open+1:len(text)-1], true
		} else {
			name, value, hasValue = strings.Cut(text, " ")
		}
	}

	kind, known := ir.ParseAttributeKind(name)

	if !hasValue {
		if known {
			return ir.KnownAttribute{Kind: kind}
		}
		return ir.StringAttribute{Name: text}
	}

	if known {
		integer, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return ir.KnownIntegerValueAttribute{
				Kind:  kind,
				Value: integer,
			}
		}
	}

	return ir.StringValueAttribute{
		Name:  name,
		Value: value,
	}
}

// CalledFunctions returns the names of the functions called by the module's functions,
// in order of first occurrence.
func CalledFunctions(module *vm.Module) []string {
	var names []string
	seen := map[string]struct{}{}

	for _, function := range module.Functions {
		function.ForEachValueInstruction(func(_ *ir.InstructionBlock, instruction *ir.ValueInstruction) {
			if instruction.Opcode != "call" || len(instruction.Operands) == 0 {
				return
			}
			callee := instruction.Operands[0]
			if _, ok := seen[callee]; ok {
				return
			}
			seen[callee] = struct{}{}
			names = append(names, callee)
		})
	}

	return names
}
