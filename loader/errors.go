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

import (
	"fmt"

	"github.com/onflow/irengine/errors"
)

// DecodingError is reported when a module description is not valid YAML,
// or does not have the expected structure.
type DecodingError struct {
	Err error
}

var _ errors.UserError = DecodingError{}

func (DecodingError) IsUserError() {}

func (e DecodingError) Unwrap() error {
	return e.Err
}

func (e DecodingError) Error() string {
	return fmt.Sprintf("cannot decode module description: %s", e.Err)
}

// DescriptionError is reported when a part of a module description is invalid.
type DescriptionError struct {
	Location string
	Err      error
}

var _ errors.UserError = DescriptionError{}

func (DescriptionError) IsUserError() {}

func (e DescriptionError) Unwrap() error {
	return e.Err
}

func (e DescriptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Err)
}

// DuplicateNameError is reported when a module declares two entities of the same kind with the same name.
type DuplicateNameError struct {
	Kind string
	Name string
}

var _ errors.UserError = DuplicateNameError{}

func (DuplicateNameError) IsUserError() {}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s %s", e.Kind, e.Name)
}

// UnknownBlockError is reported when an instruction refers to a block which does not exist.
type UnknownBlockError struct {
	Name string
}

var _ errors.UserError = UnknownBlockError{}

func (UnknownBlockError) IsUserError() {}

func (e UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown block %s", e.Name)
}

// MissingOperandError is reported when an instruction lacks a required operand.
type MissingOperandError struct {
	Opcode string
}

var _ errors.UserError = MissingOperandError{}

func (MissingOperandError) IsUserError() {}

func (e MissingOperandError) Error() string {
	return fmt.Sprintf("instruction %s is missing an operand", e.Opcode)
}
