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

// Phi is the assignment of a phi node's value on one incoming edge.
// The assignment must happen when leaving the predecessor block.
type Phi struct {
	Block *InstructionBlock
	Phi   *PhiInstruction
	Value string
}

// Phis are the phi assignments of a function, keyed by predecessor block.
type Phis map[*InstructionBlock][]Phi

// CollectPhis returns the phi assignments of the given function,
// grouped by the predecessor block in which they are performed.
func CollectPhis(function *FunctionDefinition) Phis {
	result := Phis{}

	for _, block := range function.Blocks {
		for _, instruction := range block.Instructions {
			phi, ok := instruction.(*PhiInstruction)
			if !ok {
				continue
			}
			for _, incoming := range phi.Incoming {
				predecessor := incoming.Block
				result[predecessor] = append(
					result[predecessor],
					Phi{
						Block: block,
						Phi:   phi,
						Value: incoming.Value,
					},
				)
			}
		}
	}

	return result
}
