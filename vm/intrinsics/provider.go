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

// Package intrinsics provides the built-in intrinsic implementations of functions:
// memory intrinsics over virtual allocations, and bit and math intrinsics.
package intrinsics

import (
	"strings"

	"github.com/SaveTheRbtz/mph"

	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/vm"
)

type generator func(name string, functionType *types.FunctionType) vm.CallTarget

type builtin struct {
	name        string
	forceInline bool
	generate    generator
}

var builtins = []builtin{
	{name: "memcpy", generate: generateMemoryCopy},
	{name: "memmove", generate: generateMemoryCopy},
	{name: "memset", generate: generateMemorySet},
	{name: "llvm.memcpy", forceInline: true, generate: generateMemoryCopy},
	{name: "llvm.memmove", forceInline: true, generate: generateMemoryCopy},
	{name: "llvm.memset", forceInline: true, generate: generateMemorySet},
	{name: "llvm.ctpop", forceInline: true, generate: generatePopulationCount},
	{name: "llvm.bswap", forceInline: true, generate: generateByteSwap},
	{name: "llvm.fabs", forceInline: true, generate: generateAbsolute},
	{name: "llvm.sqrt", forceInline: true, generate: generateSquareRoot},
	{name: "abs", generate: generateAbsolute},
	{name: "labs", generate: generateAbsolute},
}

var builtinNames = func() []string {
	names := make([]string, 0, len(builtins))
	for _, builtin := range builtins {
		names = append(names, builtin.name)
	}
	return names
}()

var builtinsTable = mph.Build(builtinNames)

// baseName returns the name of an overloaded LLVM intrinsic without its type suffixes,
// e.g. `llvm.ctpop` for `llvm.ctpop.i32`.
func baseName(name string) string {
	if !strings.HasPrefix(name, "llvm.") {
		return name
	}
	rest := name[len("llvm."):]
	index := strings.IndexByte(rest, '.')
	if index < 0 {
		return name
	}
	return name[:len("llvm.")+index]
}

func lookupBuiltin(name string) (builtin, bool) {
	if index, ok := builtinsTable.Lookup(name); ok {
		return builtins[index], true
	}
	if index, ok := builtinsTable.Lookup(baseName(name)); ok {
		return builtins[index], true
	}
	return builtin{}, false
}

// Provider is the provider of the built-in intrinsics.
type Provider struct{}

var _ vm.IntrinsicProvider = Provider{}

func NewProvider() Provider {
	return Provider{}
}

// IsIntrinsified returns true if a built-in intrinsic implementation exists for the function.
func (Provider) IsIntrinsified(name string) bool {
	_, ok := lookupBuiltin(name)
	return ok
}

func (Provider) LookupIntrinsic(name string) (vm.IntrinsicFactory, bool) {
	builtin, ok := lookupBuiltin(name)
	if !ok {
		return vm.IntrinsicFactory{}, false
	}

	return vm.IntrinsicFactory{
		ForceInline: builtin.forceInline,
		Generate:    builtin.generate,
	}, true
}
