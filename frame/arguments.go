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

package frame

import (
	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/ir"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

// StructCopier copies a structure passed by value into the callee's frame.
type StructCopier interface {
	// CopyStruct allocates a copy of the structure of the given type, pointed to by source,
	// on the given stack, and returns a pointer to the copy.
	CopyStruct(stack values.Value, structType types.Type, source values.Value) values.Value
}

// ArgumentCopier copies the arguments of an invocation into the slots of the activation.
//
// Argument 0 is the stack pointer. If the function returns a structure,
// argument 1 is the pointer to the return value, which is not copied.
// All following arguments are copied into the parameter slots.
type ArgumentCopier struct {
	stackSlot     *Slot
	parameters    []argumentCopy
	firstArgument int
	copier        StructCopier
}

type argumentCopy struct {
	slot        *Slot
	byValueType types.Type
}

func NewArgumentCopier(
	function *ir.FunctionDefinition,
	layout *Layout,
	copier StructCopier,
) *ArgumentCopier {

	firstArgument := 1
	if function.ReturnsStructure() {
		firstArgument++
	}

	parameters := make([]argumentCopy, 0, len(function.Parameters))
	for _, parameter := range function.Parameters {
		slot := layout.FindSlot(parameter.Name)
		if slot == nil {
			panic(errors.NewUnexpectedError("missing slot for parameter %s", parameter.Name))
		}

		var byValueType types.Type
		if parameter.IsStructByValue() {
			byValueType = parameter.Type.(*types.PointerType).PointeeType
		}

		parameters = append(
			parameters,
			argumentCopy{
				slot:        slot,
				byValueType: byValueType,
			},
		)
	}

	return &ArgumentCopier{
		stackSlot:     layout.StackSlot(),
		parameters:    parameters,
		firstArgument: firstArgument,
		copier:        copier,
	}
}

// ArgumentCount returns the number of arguments the function must be invoked with.
func (c *ArgumentCopier) ArgumentCount() int {
	return c.firstArgument + len(c.parameters)
}

func (c *ArgumentCopier) CopyArguments(activation *Activation, arguments []values.Value) {
	if len(arguments) < c.ArgumentCount() {
		panic(errors.NewUnexpectedError(
			"invalid argument count: expected %d, got %d",
			c.ArgumentCount(),
			len(arguments),
		))
	}

	stack := arguments[0]
	activation.SetObject(c.stackSlot, stack)

	argumentIndex := c.firstArgument
	for _, parameter := range c.parameters {
		argument := arguments[argumentIndex]
		argumentIndex++

		if parameter.byValueType != nil {
			if c.copier == nil {
				panic(errors.NewUnexpectedError("missing struct copier for parameter %s", parameter.slot.Name()))
			}
			argument = c.copier.CopyStruct(stack, parameter.byValueType, argument)
		}

		activation.Write(parameter.slot, argument)
	}
}
