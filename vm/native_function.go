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

// NativeSymbol is a function exported by a native library, or a native wrapper of a function.
type NativeSymbol interface {
	CallTarget
	// Address is the native address of the symbol.
	Address() uint64
}

// NativeLookupResult is the result of a lookup of a function in the native libraries.
type NativeLookupResult struct {
	// Library is the name of the library which exports the function.
	Library string
	// Symbol is the exported symbol, nil if the library has no symbol for the function.
	Symbol NativeSymbol
}

// NativeExtension provides access to native code.
type NativeExtension interface {
	// LookupNativeFunction finds the library which exports a function with the given name.
	LookupNativeFunction(name string) (NativeLookupResult, bool)
	// CreateNativeWrapper creates a native symbol which calls the given function, if possible.
	CreateNativeWrapper(descriptor *FunctionDescriptor) (NativeSymbol, bool)
}
