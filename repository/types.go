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

	"github.com/QuincePHP/eloquent-base-repository/types"

	"github.com/uptrace/bun"
)

// Finder groups the read operations of a repository.
type Finder[T any] interface {
	// FindByID fetches rows by primary key with an optional column
	// projection and eager-loaded relations. relations accepts nil, a
	// single relation name, or a list of names.
	FindByID(ctx context.Context, id interface{}, columns []string, relations interface{}) ([]*T, error)

	// Find parses the filter specification and returns one page of matching
	// rows. An empty specification is a no-op signal: Find returns
	// (nil, nil) without touching the store.
	Find(ctx context.Context, filters interface{}, opts ...types.FindOption) (*types.Page[T], error)

	// FindBy runs a single equality filter on an allow-listed column.
	FindBy(ctx context.Context, column string, value interface{}) (*types.Page[T], error)

	// CallFinder resolves a FindBy<Column> method name and delegates to
	// FindBy with the lower-cased column.
	CallFinder(ctx context.Context, method string, value interface{}) (*types.Page[T], error)

	// Count returns the number of matching rows; an empty filter
	// specification counts the whole table.
	Count(ctx context.Context, filters interface{}) (int, error)
}

// Mutator groups the write operations of a repository.
type Mutator[T any] interface {
	// FirstOrCreate returns the first row matching every field of data,
	// inserting one when no match exists.
	FirstOrCreate(ctx context.Context, data map[string]interface{}) (*T, error)

	// UpdateByID upserts the row identified by id with the given fields and
	// returns the resulting entity.
	UpdateByID(ctx context.Context, id interface{}, data map[string]interface{}) (*T, error)

	// DeleteByID loads the row by primary key and deletes it. A missing row
	// surfaces as *Error.
	DeleteByID(ctx context.Context, id interface{}) (bool, error)

	// Delete removes all rows matching the filter specification. An empty
	// specification is a no-op signal: Delete returns (false, nil) without
	// touching the store.
	Delete(ctx context.Context, filters interface{}) (bool, error)
}

// Repository combines read and write operations with transaction support
// and exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	Finder[T]
	Mutator[T]

	// Transaction runs fn inside one store transaction. Failures from fn
	// propagate unmodified.
	Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error

	NewSelect() *bun.SelectQuery
	NewDelete() *bun.DeleteQuery
}
