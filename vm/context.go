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
	"sync"
	"time"

	"github.com/onflow/irengine/common/bimap"
	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
	"github.com/onflow/irengine/values"
)

// NullFunctionID is the ID of the null function.
const NullFunctionID = 0

// Context is an execution context: it owns the function descriptors of a program,
// and the mapping from native function pointers back to descriptors.
type Context struct {
	config *Config

	mu                sync.RWMutex
	descriptors       []*FunctionDescriptor
	descriptorsByName map[string]*FunctionDescriptor
	bodies            map[string]moduleBody

	functionPointers *bimap.BiMap[uint64, *FunctionDescriptor]
}

func NewContext(config *Config) *Context {
	if config == nil {
		config = NewConfig()
	}

	context := &Context{
		config:            config,
		descriptorsByName: map[string]*FunctionDescriptor{},
		bodies:            map[string]moduleBody{},
		functionPointers:  bimap.NewBiMap[uint64, *FunctionDescriptor](),
	}

	nullFunction := newFunctionDescriptor(
		context,
		NullFunctionID,
		"",
		types.NewFunctionType(types.Void, false),
		NullFunction{},
	)
	context.descriptors = append(context.descriptors, nullFunction)

	return context
}

func (c *Context) Config() *Config {
	return c.config
}

// NullFunction returns the descriptor of the null function.
func (c *Context) NullFunction() *FunctionDescriptor {
	return c.descriptors[NullFunctionID]
}

// FunctionDescriptor returns the descriptor of the function with the given name,
// creating an unresolved one if the function is not known yet.
// Functions without a name are anonymous, and get a new descriptor each time.
func (c *Context) FunctionDescriptor(name string, functionType *types.FunctionType) *FunctionDescriptor {
	if name != "" {
		c.mu.RLock()
		descriptor, ok := c.descriptorsByName[name]
		c.mu.RUnlock()
		if ok {
			return descriptor
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if name != "" {
		if descriptor, ok := c.descriptorsByName[name]; ok {
			return descriptor
		}
	}

	descriptor := newFunctionDescriptor(
		c,
		uint64(len(c.descriptors)),
		name,
		functionType,
		UnresolvedFunction{},
	)
	c.descriptors = append(c.descriptors, descriptor)
	if name != "" {
		c.descriptorsByName[name] = descriptor
	}

	return descriptor
}

func (c *Context) LookupFunctionDescriptor(name string) (*FunctionDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptor, ok := c.descriptorsByName[name]
	return descriptor, ok
}

func (c *Context) FunctionDescriptorByID(id uint64) (*FunctionDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if id >= uint64(len(c.descriptors)) {
		return nil, false
	}
	return c.descriptors[id], true
}

// RegisterFunctionPointer records that the native pointer refers to the given function.
// A pointer keeps referring to the first function it was registered for.
func (c *Context) RegisterFunctionPointer(pointer uint64, descriptor *FunctionDescriptor) *FunctionDescriptor {
	actual, _ := c.functionPointers.Insert(pointer, descriptor)
	return actual
}

// FunctionDescriptorForPointer returns the function the given native pointer refers to, if any.
func (c *Context) FunctionDescriptorForPointer(pointer uint64) (*FunctionDescriptor, bool) {
	if pointer == 0 {
		return c.NullFunction(), true
	}
	return c.functionPointers.Get(pointer)
}

// knownFunctionNames returns the names of all named functions, and of all module bodies.
func (c *Context) knownFunctionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.descriptorsByName)+len(c.bodies))
	for name, descriptor := range c.descriptorsByName { //nolint:maprange
		if descriptor.IsDefined() {
			names = append(names, name)
		}
	}
	for name := range c.bodies { //nolint:maprange
		if _, ok := c.descriptorsByName[name]; ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Invoke calls the function with the given arguments, on a new stack.
// Errors raised during the call, including linkage errors, are returned.
func (c *Context) Invoke(descriptor *FunctionDescriptor, arguments ...values.Value) (result values.Value, err error) {
	defer func() {
		errors.Recover(recover(), &err)

		if external, ok := errors.GetExternalError(err); ok {
			c.config.Logger.Error().
				Str("function", descriptor.Name()).
				Str("recovered", external.Error()).
				Msg("function panicked")
		}
	}()

	config := c.config

	var startTime time.Time
	if config.enabled() {
		startTime = time.Now()
	}

	stack := NewStack(config.StackDepthLimit)

	callArguments := make([]values.Value, 0, len(arguments)+1)
	callArguments = append(callArguments, stack)
	callArguments = append(callArguments, arguments...)

	result = descriptor.CallTarget().Call(callArguments)

	if config.enabled() {
		config.reportInvokeTrace(
			c,
			descriptor.Name(),
			descriptor.ID(),
			len(arguments),
			time.Since(startTime),
		)
	}

	return result, nil
}
