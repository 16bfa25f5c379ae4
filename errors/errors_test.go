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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInternalError(t *testing.T) {

	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsInternalError(NewUnexpectedError("test")))
		assert.True(t, IsInternalError(NewUnreachableError()))
		assert.False(t, IsInternalError(NewDefaultUserError("test")))
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", NewUnexpectedError("inner"))
		assert.True(t, IsInternalError(err))
		assert.False(t, IsUserError(err))
	})
}

func TestIsUserError(t *testing.T) {

	t.Parallel()

	err := fmt.Errorf("outer: %w", NewDefaultUserError("inner %d", 1))
	assert.True(t, IsUserError(err))
	assert.Equal(t, "outer: inner 1", err.Error())
}

func TestRecover(t *testing.T) {

	t.Parallel()

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		run := func() (err error) {
			defer func() {
				Recover(recover(), &err)
			}()
			panic(NewUnexpectedError("boom"))
		}

		err := run()
		require.Error(t, err)
		assert.True(t, IsInternalError(err))
	})

	t.Run("non-error value", func(t *testing.T) {
		t.Parallel()

		run := func() (err error) {
			defer func() {
				Recover(recover(), &err)
			}()
			panic("boom")
		}

		err := run()
		require.Error(t, err)

		externalError, ok := GetExternalError(err)
		require.True(t, ok)
		assert.Equal(t, "boom", externalError.Recovered)
	})

	t.Run("runtime error", func(t *testing.T) {
		t.Parallel()

		run := func() (err error) {
			defer func() {
				Recover(recover(), &err)
			}()
			var values []int
			_ = values[1]
			return nil
		}

		assert.Panics(t, func() {
			_ = run()
		})
	})

	t.Run("nothing", func(t *testing.T) {
		t.Parallel()

		run := func() (err error) {
			defer func() {
				Recover(recover(), &err)
			}()
			return nil
		}

		assert.NoError(t, run())
	})
}
