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

package bimap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiMap_Insert(t *testing.T) {

	t.Parallel()

	m := NewBiMap[uint64, string]()

	actual, present := m.Insert(1, "a")
	assert.False(t, present)
	assert.Equal(t, "a", actual)

	// existing mappings are never replaced
	actual, present = m.Insert(1, "b")
	assert.True(t, present)
	assert.Equal(t, "a", actual)

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	k, ok := m.GetInverse("a")
	require.True(t, ok)
	assert.Equal(t, uint64(1), k)

	assert.False(t, m.ExistsInverse("b"))
	assert.Equal(t, 1, m.Size())
}

func TestBiMap_GetInverseKeepsFirstKey(t *testing.T) {

	t.Parallel()

	m := NewBiMap[uint64, string]()
	m.Insert(1, "a")
	m.Insert(2, "a")

	k, ok := m.GetInverse("a")
	require.True(t, ok)
	assert.Equal(t, uint64(1), k)
	assert.True(t, m.Exists(2))
}

func TestBiMap_ConcurrentInsert(t *testing.T) {

	t.Parallel()

	m := NewBiMap[uint64, int]()

	const workers = 8
	results := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.Insert(42, i)
		}(i)
	}
	wg.Wait()

	winner, ok := m.Get(42)
	require.True(t, ok)
	for _, result := range results {
		assert.Equal(t, winner, result)
	}
}
