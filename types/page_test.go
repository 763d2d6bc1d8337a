/*
 * Copyright 2026 QuincePHP.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFindOptionsDefaults(t *testing.T) {
	o := NewFindOptions()
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, DefaultPerPage, o.PerPage)
	assert.Empty(t, o.Columns)
	assert.Zero(t, o.Offset())
}

func TestNewFindOptionsApplied(t *testing.T) {
	o := NewFindOptions(WithPage(3), WithPerPage(20), WithColumns("id", "name"))
	assert.Equal(t, 3, o.Page)
	assert.Equal(t, 20, o.PerPage)
	assert.Equal(t, []string{"id", "name"}, o.Columns)
	assert.Equal(t, 40, o.Offset())
}

func TestNewFindOptionsClampsInvalidValues(t *testing.T) {
	o := NewFindOptions(WithPage(-1), WithPerPage(0))
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, DefaultPerPage, o.PerPage)
}

func TestJSONObjectScan(t *testing.T) {
	var obj JSONObject
	assert.NoError(t, obj.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, float64(1), obj["a"])

	var empty JSONObject
	assert.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
}
