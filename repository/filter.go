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
	"fmt"
	"reflect"
	"strings"
)

// Supported operators with special normalization rules. Any other operator
// string is passed to the store as a binary comparison.
const (
	OperatorEqual = "="
	OperatorLike  = "LIKE"
	OperatorIn    = "WHEREIN"
)

// Predicate is one canonical column/operator/value comparison condition.
type Predicate struct {
	Column   string
	Operator string
	Value    interface{}
}

// ParseFilters normalizes a raw filter specification into an ordered list
// of predicates. The input must be a list: either a single
// (column, operator, value) triple, or a list of such triples. The operator
// slot may be omitted, defaulting to equality. LIKE appends a trailing
// wildcard to the value; WHEREIN coerces a scalar value into a one-element
// list. Keyed containers such as maps violate the contract.
func ParseFilters(input interface{}) ([]Predicate, error) {
	rv := reflect.ValueOf(input)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: filters must be a list, got %T", ErrInvalidFilter, input)
	}

	raw := make([]interface{}, rv.Len())
	for i := range raw {
		raw[i] = rv.Index(i).Interface()
	}
	// A flat triple is treated as a one-element filter list.
	if len(raw) > 0 && !isSequence(raw[0]) {
		raw = []interface{}{input}
	}

	preds := make([]Predicate, 0, len(raw))
	for _, entry := range raw {
		triple, err := toTriple(entry)
		if err != nil {
			return nil, err
		}
		column, operator, value := triple[0], triple[1], triple[2]
		if value == nil {
			value = operator
			operator = OperatorEqual
		}

		col, ok := column.(string)
		if !ok || col == "" || value == nil {
			return nil, fmt.Errorf("%w: filter entry needs a column name and a value", ErrInvalidFilter)
		}
		op, ok := operator.(string)
		if !ok || op == "" {
			return nil, fmt.Errorf("%w: filter operator must be a string, got %T", ErrInvalidFilter, operator)
		}

		switch strings.ToUpper(op) {
		case OperatorLike:
			value = fmt.Sprintf("%v%%", value)
		case OperatorIn:
			value = toList(value)
		}
		preds = append(preds, Predicate{Column: col, Operator: op, Value: value})
	}
	return preds, nil
}

func isSequence(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

// toTriple pads a filter entry to exactly (column, operator, value),
// filling missing slots with nil.
func toTriple(entry interface{}) ([3]interface{}, error) {
	var triple [3]interface{}
	rv := reflect.ValueOf(entry)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return triple, fmt.Errorf("%w: filter entry must be a list, got %T", ErrInvalidFilter, entry)
	}
	for i := 0; i < rv.Len() && i < 3; i++ {
		v := rv.Index(i).Interface()
		if v != nil {
			triple[i] = v
		}
	}
	return triple, nil
}

func toList(value interface{}) []interface{} {
	rv := reflect.ValueOf(value)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []interface{}{value}
}

// isEmptyFilters reports whether the raw filter specification is the empty
// no-op signal: nil or a zero-length list.
func isEmptyFilters(input interface{}) bool {
	if input == nil {
		return true
	}
	rv := reflect.ValueOf(input)
	return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
}
