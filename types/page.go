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

// DefaultPerPage is the page size used when the caller does not set one.
const DefaultPerPage = 15

// FindOptions holds pagination and projection settings for filtered queries.
type FindOptions struct {
	Page    int
	PerPage int
	Columns []string
}

// FindOption customizes a single filtered query.
type FindOption func(*FindOptions)

// WithPage sets the page number to fetch (1-based).
func WithPage(page int) FindOption {
	return func(o *FindOptions) { o.Page = page }
}

// WithPerPage sets the page size.
func WithPerPage(perPage int) FindOption {
	return func(o *FindOptions) { o.PerPage = perPage }
}

// WithColumns restricts the selected columns; empty means all columns.
func WithColumns(columns ...string) FindOption {
	return func(o *FindOptions) { o.Columns = columns }
}

// NewFindOptions applies the given options over the defaults.
func NewFindOptions(opts ...FindOption) *FindOptions {
	o := &FindOptions{Page: 1, PerPage: DefaultPerPage}
	for _, opt := range opts {
		opt(o)
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	return o
}

// Offset returns the row offset for the configured page.
func (o *FindOptions) Offset() int {
	return (o.Page - 1) * o.PerPage
}

// Page holds one page of query results along with pagination metadata.
type Page[T any] struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int   `json:"total"`
	Items   []*T  `json:"items"`
}

// NewPage constructs an empty page container.
func NewPage[T any](page int, perPage int) *Page[T] {
	return &Page[T]{Page: page, PerPage: perPage, Items: make([]*T, 0)}
}
