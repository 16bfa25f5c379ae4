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

package values

import (
	"fmt"

	"github.com/onflow/irengine/errors"
)

// UnexpectedValueKindError is reported when a value of a kind
// which is not handled by an operation is encountered.
type UnexpectedValueKindError struct {
	Operation string
	Value     Value
}

var _ errors.InternalError = UnexpectedValueKindError{}

func (UnexpectedValueKindError) IsInternalError() {}

func (e UnexpectedValueKindError) Error() string {
	return fmt.Sprintf(
		"%s: unexpected value kind: %T",
		e.Operation,
		e.Value,
	)
}

// UnresolvablePointerError is reported when a value must be
// converted to a native address, but it has none.
type UnresolvablePointerError struct {
	Value Value
	Err   error
}

var _ errors.UserError = UnresolvablePointerError{}

func (UnresolvablePointerError) IsUserError() {}

func (e UnresolvablePointerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %s to a native pointer: %s", e.Value, e.Err)
	}
	return fmt.Sprintf("cannot convert %s to a native pointer", e.Value)
}

func (e UnresolvablePointerError) Unwrap() error {
	return e.Err
}
