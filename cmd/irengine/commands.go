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

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/frame"
	"github.com/onflow/irengine/loader"
	"github.com/onflow/irengine/vm"
	"github.com/onflow/irengine/vm/intrinsics"
)

type printer struct {
	out    io.Writer
	colors colorizer
}

// printLayouts prints the frame layout of each function of the module.
func (p printer) printLayouts(module *vm.Module) {
	for _, function := range module.Functions {
		layout := frame.NewLayout(function)

		_, _ = fmt.Fprintf(
			p.out,
			"%s %s\n",
			p.colors.name(function.Name),
			function.Type,
		)

		for _, slot := range layout.Slots() {
			_, _ = fmt.Fprintf(
				p.out,
				"  %3d  %-16s %-12s %s\n",
				slot.Index(),
				slot.Name(),
				slot.Type(),
				p.colors.kind(slot.Kind().String()),
			)
		}
	}
}

// link resolves the functions called by the given modules against the modules' bodies
// and the built-in intrinsics, and returns the number of functions which cannot be resolved.
func (p printer) link(logger zerolog.Logger, modules []*vm.Module) (failures int, err error) {
	defer func() {
		errors.Recover(recover(), &err)
	}()

	config := vm.NewConfig().
		WithLogger(logger).
		WithIntrinsicProvider(intrinsics.NewProvider())

	context := vm.NewContext(config)

	for _, module := range modules {
		context.RegisterModule(module)
	}

	for _, module := range modules {
		for _, name := range loader.CalledFunctions(module) {
			descriptor := context.FunctionDescriptor(name, nil)

			function, resolveErr := descriptor.TryResolve()
			if resolveErr != nil {
				failures++
				_, _ = fmt.Fprintf(p.out, "%s: %s\n", p.colors.name(name), p.colors.error(resolveErr.Error()))
				continue
			}

			description := function.Kind().String()
			if library := descriptor.Library(); library != "" {
				description += " in " + library
			}
			if function.Kind() == vm.FunctionKindIntrinsic && descriptor.Intrinsic().ForceInline() {
				description += ", inlined"
			}

			_, _ = fmt.Fprintf(p.out, "%s: %s\n", p.colors.name(name), p.colors.success(description))
		}
	}

	return failures, nil
}
