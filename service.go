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

// Package eloquent exposes a service facade over the generic repository,
// bound lazily to the global database connection.
package eloquent

import (
	"context"
	"sync"

	"github.com/QuincePHP/eloquent-base-repository/database"
	"github.com/QuincePHP/eloquent-base-repository/repository"
	"github.com/QuincePHP/eloquent-base-repository/types"

	"github.com/uptrace/bun"
)

// Service is the high-level entry point for one entity kind.
type Service[T any] interface {
	// FirstOrCreate returns the first entity matching data, creating one
	// when no match exists.
	FirstOrCreate(ctx context.Context, data map[string]interface{}) (*T, error)

	// FindByID fetches entities by primary key with optional column
	// projection and eager-loaded relations.
	FindByID(ctx context.Context, id interface{}, columns []string, relations interface{}) ([]*T, error)

	// Find returns one page of entities matching the filter specification;
	// an empty specification returns (nil, nil) without touching the store.
	Find(ctx context.Context, filters interface{}, opts ...types.FindOption) (*types.Page[T], error)

	// FindBy runs a single equality filter on an allow-listed column.
	FindBy(ctx context.Context, column string, value interface{}) (*types.Page[T], error)

	// Count returns the number of entities matching the filters.
	Count(ctx context.Context, filters interface{}) (int, error)

	// UpdateByID upserts the entity identified by id with the given fields.
	UpdateByID(ctx context.Context, id interface{}, data map[string]interface{}) (*T, error)

	// DeleteByID removes the entity with the given id.
	DeleteByID(ctx context.Context, id interface{}) (bool, error)

	// Delete removes all entities matching the filters; an empty
	// specification returns (false, nil) without touching the store.
	Delete(ctx context.Context, filters interface{}) (bool, error)

	// Transaction runs fn inside one store transaction.
	Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

type baseService[T any] struct {
	opts []repository.Option
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service backed by the generic repository over the
// global database connection.
func NewService[T any](opts ...repository.Option) Service[T] {
	return &baseService[T]{opts: opts}
}

func (s *baseService[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.New[T](database.GetDB(), s.opts...) })
	return s.repo
}

func (s *baseService[T]) FirstOrCreate(ctx context.Context, data map[string]interface{}) (*T, error) {
	return s.baseRepo().FirstOrCreate(ctx, data)
}

func (s *baseService[T]) FindByID(ctx context.Context, id interface{}, columns []string, relations interface{}) ([]*T, error) {
	return s.baseRepo().FindByID(ctx, id, columns, relations)
}

func (s *baseService[T]) Find(ctx context.Context, filters interface{}, opts ...types.FindOption) (*types.Page[T], error) {
	return s.baseRepo().Find(ctx, filters, opts...)
}

func (s *baseService[T]) FindBy(ctx context.Context, column string, value interface{}) (*types.Page[T], error) {
	return s.baseRepo().FindBy(ctx, column, value)
}

func (s *baseService[T]) Count(ctx context.Context, filters interface{}) (int, error) {
	return s.baseRepo().Count(ctx, filters)
}

func (s *baseService[T]) UpdateByID(ctx context.Context, id interface{}, data map[string]interface{}) (*T, error) {
	return s.baseRepo().UpdateByID(ctx, id, data)
}

func (s *baseService[T]) DeleteByID(ctx context.Context, id interface{}) (bool, error) {
	return s.baseRepo().DeleteByID(ctx, id)
}

func (s *baseService[T]) Delete(ctx context.Context, filters interface{}) (bool, error) {
	return s.baseRepo().Delete(ctx, filters)
}

func (s *baseService[T]) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return s.baseRepo().Transaction(ctx, fn)
}
