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

	"github.com/onflow/irengine/errors"
	"github.com/onflow/irengine/types"
)

// IntrinsicFactory generates the implementations of an intrinsic.
type IntrinsicFactory struct {
	// ForceInline requests that calls to the intrinsic are always inlined.
	ForceInline bool
	// ForceSplit requests that the intrinsic gets a separate copy per call site.
	ForceSplit bool
	// Generate creates the implementation of the intrinsic for the given function type.
	Generate func(name string, functionType *types.FunctionType) CallTarget
}

// IntrinsicProvider provides intrinsic implementations for functions.
type IntrinsicProvider interface {
	LookupIntrinsic(name string) (IntrinsicFactory, bool)
}

// Intrinsic is a function with an intrinsic implementation.
// An intrinsic may be called with different function types,
// the implementation for each type is generated once and cached.
type Intrinsic struct {
	context   *Context
	name      string
	factory   IntrinsicFactory
	mu        sync.RWMutex
	overloads map[types.TypeKey]CallTarget
}

func newIntrinsic(context *Context, name string, factory IntrinsicFactory) *Intrinsic {
	return &Intrinsic{
		context:   context,
		name:      name,
		factory:   factory,
		overloads: map[types.TypeKey]CallTarget{},
	}
}

func (i *Intrinsic) Name() string {
	return i.name
}

func (i *Intrinsic) ForceInline() bool {
	return i.factory.ForceInline
}

func (i *Intrinsic) ForceSplit() bool {
	return i.factory.ForceSplit
}

// OverloadCount returns the number of generated implementations.
func (i *Intrinsic) OverloadCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.overloads)
}

// CachedCallTarget returns the implementation of the intrinsic for the given function type,
// generating it if needed.
func (i *Intrinsic) CachedCallTarget(functionType *types.FunctionType) CallTarget {
	key := types.MustKey(functionType)

	i.mu.RLock()
	callTarget, ok := i.overloads[key]
	i.mu.RUnlock()
	if ok {
		return callTarget
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	callTarget, ok = i.overloads[key]
	if ok {
		return callTarget
	}

	callTarget = i.generate(functionType)
	i.overloads[key] = callTarget
	return callTarget
}

func (i *Intrinsic) generate(functionType *types.FunctionType) CallTarget {
	context := i.context
	config := context.config

	var startTime time.Time
	if config.enabled() {
		startTime = time.Now()
	}

	callTarget := i.factory.Generate(i.name, functionType)
	if callTarget == nil {
		panic(errors.NewUnexpectedError(
			"intrinsic %s has no implementation for type %s",
			i.name,
			functionType,
		))
	}

	if config.enabled() {
		config.reportIntrinsicGenerateTrace(
			context,
			i.name,
			functionType.String(),
			time.Since(startTime),
		)
	}

	config.Logger.Debug().
		Str("intrinsic", i.name).
		Str("type", functionType.String()).
		Msg("generated intrinsic")

	return callTarget
}
