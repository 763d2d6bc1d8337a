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
	"strings"

	"github.com/uptrace/bun"
)

// Clause renders the predicate as a Bun where clause with its arguments.
// WHEREIN becomes a set-membership constraint; everything else is a binary
// comparison on the column.
func (p Predicate) Clause() (string, []interface{}) {
	if strings.EqualFold(p.Operator, OperatorIn) {
		return "? IN (?)", []interface{}{bun.Ident(p.Column), bun.In(p.Value)}
	}
	return fmt.Sprintf("? %s ?", p.Operator), []interface{}{bun.Ident(p.Column), p.Value}
}

// ApplyPredicate adds the predicate to a select query and returns the next
// builder state, so a predicate list left-folds onto one query.
func ApplyPredicate(q *bun.SelectQuery, p Predicate) *bun.SelectQuery {
	clause, args := p.Clause()
	return q.Where(clause, args...)
}

// ApplyDeletePredicate is ApplyPredicate for delete queries.
func ApplyDeletePredicate(q *bun.DeleteQuery, p Predicate) *bun.DeleteQuery {
	clause, args := p.Clause()
	return q.Where(clause, args...)
}
