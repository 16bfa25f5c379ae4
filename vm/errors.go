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
	"fmt"
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/irengine/errors"
)

// LinkerError is reported when a function cannot be bound to an implementation.
type LinkerError struct {
	FunctionName string
	// ClosestName is the name of a known function which is similar to the requested name, if any.
	ClosestName string
	// Native is true if the function was bound to a native library,
	// but the library has no symbol for it.
	Native bool
}

var _ error = LinkerError{}
var _ errors.UserError = LinkerError{}

func (LinkerError) IsUserError() {}

func (e LinkerError) Error() string {
	if e.Native {
		return fmt.Sprintf("Native function %s not found", e.FunctionName)
	}

	message := fmt.Sprintf("External function %s cannot be found.", e.FunctionName)
	if e.ClosestName != "" {
		message += fmt.Sprintf(" Did you mean %s?", e.ClosestName)
	}
	return message
}

// findClosestName finds the candidate with the smallest edit distance from the given name.
func findClosestName(name string, candidates []string) (closestName string) {
	nameRunes := []rune(name)

	closestDistance := len(name)

	sortedCandidates := make([]string, len(candidates))
	copy(sortedCandidates, candidates)
	sort.Strings(sortedCandidates)

	for _, candidate := range sortedCandidates {
		if candidate == name {
			continue
		}

		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		// Don't suggest a name if the edits required would replace the whole name
		if distance < closestDistance && distance < len(candidate) {
			closestName = candidate
			closestDistance = distance
		}
	}

	return
}

// DoubleDefinitionError is reported when a function which already
// has an implementation is defined again.
type DoubleDefinitionError struct {
	FunctionName string
	Existing     FunctionKind
}

var _ error = DoubleDefinitionError{}
var _ errors.InternalError = DoubleDefinitionError{}

func (DoubleDefinitionError) IsInternalError() {}

func (e DoubleDefinitionError) Error() string {
	return fmt.Sprintf(
		"function %s is already defined (%s)",
		e.FunctionName,
		e.Existing,
	)
}

// ConversionInCompiledCodeError is reported when a function body
// would be converted from optimized code.
type ConversionInCompiledCodeError struct {
	FunctionName string
}

var _ error = ConversionInCompiledCodeError{}
var _ errors.InternalError = ConversionInCompiledCodeError{}

func (ConversionInCompiledCodeError) IsInternalError() {}

func (e ConversionInCompiledCodeError) Error() string {
	return fmt.Sprintf("cannot convert function %s in optimized code", e.FunctionName)
}

// NullFunctionCallError is reported when the null function is called.
type NullFunctionCallError struct{}

var _ error = NullFunctionCallError{}
var _ errors.UserError = NullFunctionCallError{}

func (NullFunctionCallError) IsUserError() {}

func (NullFunctionCallError) Error() string {
	return "cannot call the null function"
}

// StackDepthLimitReachedError is reported when the call stack exceeds the configured limit.
type StackDepthLimitReachedError struct {
	Limit uint64
}

var _ error = StackDepthLimitReachedError{}
var _ errors.UserError = StackDepthLimitReachedError{}

func (StackDepthLimitReachedError) IsUserError() {}

func (e StackDepthLimitReachedError) Error() string {
	return fmt.Sprintf("stack depth limit reached: %d", e.Limit)
}
