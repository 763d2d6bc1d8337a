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

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersTwoElementDefaultsToEquality(t *testing.T) {
	preds, err := ParseFilters([][]interface{}{{"status", "active"}})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, Predicate{Column: "status", Operator: "=", Value: "active"}, preds[0])
}

func TestParseFiltersFlatTripleIsWrapped(t *testing.T) {
	preds, err := ParseFilters([]interface{}{"age", ">", 18})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, Predicate{Column: "age", Operator: ">", Value: 18}, preds[0])
}

func TestParseFiltersFlatPairIsWrapped(t *testing.T) {
	preds, err := ParseFilters([]interface{}{"status", "active"})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, Predicate{Column: "status", Operator: "=", Value: "active"}, preds[0])
}

func TestParseFiltersLikeAppendsWildcard(t *testing.T) {
	for _, op := range []string{"LIKE", "like", "Like"} {
		preds, err := ParseFilters([][]interface{}{{"name", op, "jo"}})
		require.NoError(t, err)
		require.Len(t, preds, 1)
		assert.Equal(t, "jo%", preds[0].Value)
		assert.Equal(t, op, preds[0].Operator)
	}
}

func TestParseFiltersWhereInWrapsScalar(t *testing.T) {
	preds, err := ParseFilters([][]interface{}{{"id", "WHEREIN", 7}})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, []interface{}{7}, preds[0].Value)
}

func TestParseFiltersWhereInKeepsList(t *testing.T) {
	preds, err := ParseFilters([][]interface{}{{"id", "wherein", []int{1, 2, 3}}})
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, []interface{}{1, 2, 3}, preds[0].Value)
}

func TestParseFiltersPreservesOrder(t *testing.T) {
	preds, err := ParseFilters([][]interface{}{
		{"status", "active"},
		{"age", ">=", 21},
		{"name", "LIKE", "a"},
	})
	require.NoError(t, err)
	require.Len(t, preds, 3)
	assert.Equal(t, "status", preds[0].Column)
	assert.Equal(t, "age", preds[1].Column)
	assert.Equal(t, "name", preds[2].Column)
}

func TestParseFiltersRejectsKeyedContainers(t *testing.T) {
	_, err := ParseFilters(map[string]interface{}{"status": "active"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilters(map[int]interface{}{0: []interface{}{"status", "active"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseFiltersRejectsNonListInput(t *testing.T) {
	for _, input := range []interface{}{nil, "status", 42, struct{}{}} {
		_, err := ParseFilters(input)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func TestParseFiltersRejectsMissingColumnOrValue(t *testing.T) {
	_, err := ParseFilters([][]interface{}{{nil, "=", "x"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilters([][]interface{}{{"status"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilters([][]interface{}{{"status", nil, nil}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseFiltersRejectsNonStringOperator(t *testing.T) {
	_, err := ParseFilters([][]interface{}{{"status", 12, "active"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestPredicateClause(t *testing.T) {
	clause, args := Predicate{Column: "status", Operator: "=", Value: "active"}.Clause()
	assert.Equal(t, "? = ?", clause)
	assert.Len(t, args, 2)

	clause, args = Predicate{Column: "id", Operator: "WhereIn", Value: []interface{}{1, 2}}.Clause()
	assert.Equal(t, "? IN (?)", clause)
	assert.Len(t, args, 2)
}

func TestIsEmptyFilters(t *testing.T) {
	assert.True(t, isEmptyFilters(nil))
	assert.True(t, isEmptyFilters([]interface{}{}))
	assert.True(t, isEmptyFilters([][]interface{}{}))
	assert.False(t, isEmptyFilters([]interface{}{"status", "active"}))
	assert.False(t, isEmptyFilters(map[string]interface{}{}))
}
