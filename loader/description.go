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

package loader

// ModuleDescription is the textual description of a module.
//
//	name: libdemo
//	structs:
//	  - name: pair
//	    elements: [i64, i64]
//	functions:
//	  - name: add
//	    return: i64
//	    parameters:
//	      - {name: a, type: i64}
//	      - {name: b, type: i64}
//	    blocks:
//	      - name: entry
//	        instructions:
//	          - {name: c, type: i64, opcode: add, operands: [a, b]}
//	          - {opcode: ret, operands: [c]}
type ModuleDescription struct {
	Name      string                 `yaml:"name"`
	Structs   []StructureDescription `yaml:"structs"`
	Functions []FunctionDescription  `yaml:"functions"`
}

type StructureDescription struct {
	Name     string   `yaml:"name"`
	Packed   bool     `yaml:"packed"`
	Elements []string `yaml:"elements"`
}

type FunctionDescription struct {
	Name       string                 `yaml:"name"`
	Return     string                 `yaml:"return"`
	VarArgs    bool                   `yaml:"varargs"`
	Source     string                 `yaml:"source"`
	Parameters []ParameterDescription `yaml:"parameters"`
	Blocks     []BlockDescription     `yaml:"blocks"`
}

type ParameterDescription struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Attributes []string `yaml:"attributes"`
	// Source marks the parameter as a source-level variable
	Source bool `yaml:"source"`
}

type BlockDescription struct {
	Name         string                   `yaml:"name"`
	Instructions []InstructionDescription `yaml:"instructions"`
}

type InstructionDescription struct {
	Name       string                `yaml:"name"`
	Type       string                `yaml:"type"`
	Opcode     string                `yaml:"opcode"`
	Operands   []string              `yaml:"operands"`
	Successors []string              `yaml:"successors"`
	Incoming   []IncomingDescription `yaml:"incoming"`
	// Source marks the result as a source-level variable
	Source bool `yaml:"source"`
}

type IncomingDescription struct {
	Block string `yaml:"block"`
	Value string `yaml:"value"`
}
