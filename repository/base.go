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
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/QuincePHP/eloquent-base-repository/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

type baseRepository[T any] struct {
	db         *bun.DB
	table      *schema.Table
	pk         string
	filterable map[string]struct{}
}

type options struct {
	filterable []string
}

// Option configures a repository at construction time.
type Option func(*options)

// WithFilterable fixes the set of columns the FindBy finders may use.
// Column names are matched case-insensitively.
func WithFilterable(columns ...string) Option {
	return func(o *options) { o.filterable = append(o.filterable, columns...) }
}

// New returns a repository bound to the entity kind T for its lifetime,
// backed by the provided Bun DB.
func New[T any](db *bun.DB, opts ...Option) Repository[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &baseRepository[T]{
		db:         db,
		table:      db.Table(reflect.TypeOf((*T)(nil)).Elem()),
		pk:         "id",
		filterable: make(map[string]struct{}, len(o.filterable)),
	}
	if len(r.table.PKs) > 0 {
		r.pk = r.table.PKs[0].Name
	}
	for _, c := range o.filterable {
		r.filterable[strings.ToLower(c)] = struct{}{}
	}
	return r
}

func (r *baseRepository[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepository[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepository[T]) FirstOrCreate(ctx context.Context, data map[string]interface{}) (*T, error) {
	entity, err := r.firstByFields(ctx, data)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, translate(err)
	}

	values := make(map[string]interface{}, len(data))
	for k, v := range data {
		values[k] = v
	}
	if _, err := r.db.NewInsert().Model(&values).Table(r.table.Name).Exec(ctx); err != nil {
		return nil, translate(err)
	}

	entity, err = r.firstByFields(ctx, data)
	if err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

func (r *baseRepository[T]) firstByFields(ctx context.Context, data map[string]interface{}) (*T, error) {
	entity := new(T)
	q := r.db.NewSelect().Model(entity)
	for _, k := range sortedKeys(data) {
		q = q.Where("? = ?", bun.Ident(k), data[k])
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepository[T]) FindByID(ctx context.Context, id interface{}, columns []string, relations interface{}) ([]*T, error) {
	names, err := normalizeRelations(relations)
	if err != nil {
		return nil, err
	}

	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	if len(columns) > 0 {
		q = q.Column(columns...)
	}
	for _, name := range names {
		q = q.Relation(name)
	}
	q = q.Where("? = ?", bun.Ident(r.pk), id)
	if err := q.Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return entities, nil
}

func (r *baseRepository[T]) Find(ctx context.Context, filters interface{}, opts ...types.FindOption) (*types.Page[T], error) {
	if isEmptyFilters(filters) {
		return nil, nil
	}
	preds, err := ParseFilters(filters)
	if err != nil {
		return nil, err
	}
	o := types.NewFindOptions(opts...)

	var items []*T
	q := r.db.NewSelect().Model(&items)
	if len(o.Columns) > 0 {
		q = q.Column(o.Columns...)
	}
	for _, p := range preds {
		q = ApplyPredicate(q, p)
	}

	page := types.NewPage[T](o.Page, o.PerPage)
	total, err := q.Count(ctx)
	if err != nil {
		return nil, translate(err)
	}
	if total == 0 {
		return page, nil
	}
	if err := q.Offset(o.Offset()).Limit(o.PerPage).Scan(ctx); err != nil {
		return nil, translate(err)
	}
	page.Total = total
	page.Items = items
	return page, nil
}

func (r *baseRepository[T]) Count(ctx context.Context, filters interface{}) (int, error) {
	q := r.db.NewSelect().Model((*T)(nil))
	if !isEmptyFilters(filters) {
		preds, err := ParseFilters(filters)
		if err != nil {
			return 0, err
		}
		for _, p := range preds {
			q = ApplyPredicate(q, p)
		}
	}
	total, err := q.Count(ctx)
	if err != nil {
		return 0, translate(err)
	}
	return total, nil
}

func (r *baseRepository[T]) UpdateByID(ctx context.Context, id interface{}, data map[string]interface{}) (*T, error) {
	values := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		values[k] = v
	}
	values[r.pk] = id

	fields := make([]string, 0, len(data))
	for k := range data {
		if k != r.pk {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)

	var err error
	switch {
	case r.db.HasFeature(feature.InsertOnConflict):
		err = r.upsertOnConflict(ctx, values, fields)
	case r.db.HasFeature(feature.InsertOnDuplicateKey):
		err = r.upsertOnDuplicateKey(ctx, values, fields)
	default:
		err = r.upsertFallback(ctx, id, values, fields)
	}
	if err != nil {
		return nil, translate(err)
	}

	entity := new(T)
	q := r.db.NewSelect().Model(entity).Where("? = ?", bun.Ident(r.pk), id)
	if err := q.Limit(1).Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

func (r *baseRepository[T]) upsertOnConflict(ctx context.Context, values map[string]interface{}, fields []string) error {
	q := r.db.NewInsert().Model(&values).Table(r.table.Name)
	if len(fields) == 0 {
		_, err := q.On("CONFLICT (?) DO NOTHING", bun.Ident(r.pk)).Exec(ctx)
		return err
	}
	set := make([]string, 0, len(fields))
	for _, f := range fields {
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", bun.Ident(f), bun.Ident(f)))
	}
	_, err := q.On("CONFLICT (?) DO UPDATE", bun.Ident(r.pk)).
		Set(strings.Join(set, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepository[T]) upsertOnDuplicateKey(ctx context.Context, values map[string]interface{}, fields []string) error {
	set := make([]string, 0, len(fields))
	for _, f := range fields {
		set = append(set, fmt.Sprintf("%s = VALUES(%s)", bun.Ident(f), bun.Ident(f)))
	}
	if len(set) == 0 {
		// MySQL has no DO NOTHING form; touch the key column instead.
		set = append(set, fmt.Sprintf("%s = %s", bun.Ident(r.pk), bun.Ident(r.pk)))
	}
	_, err := r.db.NewInsert().Model(&values).Table(r.table.Name).
		On("DUPLICATE KEY UPDATE " + strings.Join(set, ", ")).
		Exec(ctx)
	return err
}

// upsertFallback runs separate update and insert statements for dialects
// without native upsert support.
func (r *baseRepository[T]) upsertFallback(ctx context.Context, id interface{}, values map[string]interface{}, fields []string) error {
	q := r.db.NewUpdate().Table(r.table.Name)
	for _, f := range fields {
		q = q.Set("? = ?", bun.Ident(f), values[f])
	}
	res, err := q.Where("? = ?", bun.Ident(r.pk), id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		return nil
	}
	_, err = r.db.NewInsert().Model(&values).Table(r.table.Name).Exec(ctx)
	return err
}

func (r *baseRepository[T]) DeleteByID(ctx context.Context, id interface{}) (bool, error) {
	entity := new(T)
	q := r.db.NewSelect().Model(entity).Where("? = ?", bun.Ident(r.pk), id)
	if err := q.Limit(1).Scan(ctx); err != nil {
		return false, translate(err)
	}
	if _, err := r.db.NewDelete().Model(entity).WherePK().Exec(ctx); err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, filters interface{}) (bool, error) {
	if isEmptyFilters(filters) {
		return false, nil
	}
	preds, err := ParseFilters(filters)
	if err != nil {
		return false, err
	}
	q := r.db.NewDelete().Model((*T)(nil))
	for _, p := range preds {
		q = ApplyDeletePredicate(q, p)
	}
	if _, err := q.Exec(ctx); err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r *baseRepository[T]) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return r.db.RunInTx(ctx, nil, fn)
}

// normalizeRelations accepts nil, a relation name, or a list of names.
func normalizeRelations(relations interface{}) ([]string, error) {
	switch v := relations.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	}

	rv := reflect.ValueOf(relations)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: relations must be a string or a list of strings, got %T", ErrInvalidArgument, relations)
	}
	names := make([]string, rv.Len())
	for i := range names {
		name, ok := rv.Index(i).Interface().(string)
		if !ok {
			return nil, fmt.Errorf("%w: relation name must be a string, got %T", ErrInvalidArgument, rv.Index(i).Interface())
		}
		names[i] = name
	}
	return names, nil
}

func sortedKeys(data map[string]interface{}) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
