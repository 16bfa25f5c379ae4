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
 *
 * Based on https://github.com/vishalkuo/bimap, Copyright Vishal Kuo
 *
 */

package bimap

import "sync"

// BiMap is a bidirectional map which is safe for concurrent use.
//
// Entries are never removed: once a key is mapped to a value,
// the mapping stays for the lifetime of the map.
type BiMap[K comparable, V comparable] struct {
	mu       sync.RWMutex
	forward  map[K]V
	backward map[V]K
}

// NewBiMap returns a an empty, mutable, biMap
func NewBiMap[K comparable, V comparable]() *BiMap[K, V] {
	return &BiMap[K, V]{forward: make(map[K]V), backward: make(map[V]K)}
}

// Insert puts a key and value into the BiMap, and creates the reverse mapping from value to key,
// if the key is not yet present.
// It returns the value the key is mapped to after the call, and whether the key was already present.
func (b *BiMap[K, V]) Insert(k K, v V) (actual V, present bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.forward[k]; ok {
		return existing, true
	}
	b.forward[k] = v
	if _, ok := b.backward[v]; !ok {
		b.backward[v] = k
	}
	return v, false
}

// Exists checks whether or not a key exists in the BiMap
func (b *BiMap[K, V]) Exists(k K) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.forward[k]
	return ok
}

// ExistsInverse checks whether or not a value exists in the BiMap
func (b *BiMap[K, V]) ExistsInverse(v V) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.backward[v]
	return ok
}

// Get returns the value for a given key in the BiMap and whether or not the element was present.
func (b *BiMap[K, V]) Get(k K) (V, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.forward[k]
	return v, ok
}

// GetInverse returns the key for a given value in the BiMap and whether or not the element was present.
// If multiple keys map to the same value, the first inserted key is returned.
func (b *BiMap[K, V]) GetInverse(v V) (K, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	k, ok := b.backward[v]
	return k, ok
}

// Size returns the number of elements in the bimap
func (b *BiMap[K, V]) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.forward)
}
