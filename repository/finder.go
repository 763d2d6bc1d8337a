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
	"context"
	"fmt"
	"strings"

	"github.com/QuincePHP/eloquent-base-repository/types"
)

const finderPrefix = "findby"

func (r *baseRepository[T]) FindBy(ctx context.Context, column string, value interface{}) (*types.Page[T], error) {
	column = strings.ToLower(column)
	if _, ok := r.filterable[column]; !ok {
		return nil, fmt.Errorf("%w: cannot filter the model with column [%s]", ErrColumnNotFilterable, column)
	}
	return r.Find(ctx, [][]interface{}{{column, value}})
}

func (r *baseRepository[T]) CallFinder(ctx context.Context, method string, value interface{}) (*types.Page[T], error) {
	column, ok := finderColumn(method)
	if !ok {
		return nil, fmt.Errorf("%w: cannot find method [%s] on repository [%s]", ErrUnknownFinder, method, r.table.Name)
	}
	return r.FindBy(ctx, column, value)
}

// finderColumn extracts the column from a FindBy<Column> method name.
func finderColumn(method string) (string, bool) {
	if len(method) <= len(finderPrefix) {
		return "", false
	}
	if !strings.EqualFold(method[:len(finderPrefix)], finderPrefix) {
		return "", false
	}
	return strings.ToLower(method[len(finderPrefix):]), true
}
