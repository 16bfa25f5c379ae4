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

package vm

import (
	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/ir"
)

// Module is a unit of IR code, e.g. a bitcode library.
type Module struct {
	Name      string
	Functions []*ir.FunctionDefinition
}

type moduleBody struct {
	definition *ir.FunctionDefinition
	library    string
}

// RegisterModule makes the function bodies of the module available for resolution.
// Functions are bound to their bodies when they are first used.
func (c *Context) RegisterModule(module *Module) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// nothing is registered if any function is already defined
	names := make(map[string]struct{}, len(module.Functions))
	for _, definition := range module.Functions {
		_, registered := c.bodies[definition.Name]
		_, duplicate := names[definition.Name]
		if registered || duplicate {
			panic(DoubleDefinitionError{
				FunctionName: definition.Name,
				Existing:     FunctionKindLazyIR,
			})
		}
		names[definition.Name] = struct{}{}
	}

	for _, definition := range module.Functions {
		c.bodies[definition.Name] = moduleBody{
			definition: definition,
			library:    module.Name,
		}
	}
}

// LinkModule defines the functions of the module explicitly, i.e. eagerly binds
// each function to its body. Each body is converted when it is first called.
func (c *Context) LinkModule(module *Module) []*FunctionDescriptor {
	descriptors := make([]*FunctionDescriptor, 0, len(module.Functions))

	for _, definition := range module.Functions {
		if definition.Name == "" {
			panic(errors.NewUnexpectedError("cannot link anonymous function in module %s", module.Name))
		}

		descriptor := c.FunctionDescriptor(definition.Name, definition.Type)
		descriptor.Define(
			&LazyIRFunction{
				Converter: NewLazyConverter(c, definition),
			},
			module.Name,
		)
		descriptors = append(descriptors, descriptor)
	}

	return descriptors
}

func (c *Context) lookupBody(name string) (moduleBody, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	body, ok := c.bodies[name]
	return body, ok
}
