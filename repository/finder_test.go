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
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectStatusPage(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users".+"status" = 'active'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM "users".+"status" = 'active'.+LIMIT 15`).
		WillReturnRows(userRows(1))
}

func TestFindByAllowedColumn(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	expectStatusPage(mock)

	page, err := repo.FindBy(context.Background(), "status", "active")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByMatchesPlainFind(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	expectStatusPage(mock)
	expectStatusPage(mock)

	viaFinder, err := repo.FindBy(context.Background(), "status", "active")
	require.NoError(t, err)
	viaFind, err := repo.Find(context.Background(), [][]interface{}{{"status", "active"}})
	require.NoError(t, err)

	assert.Equal(t, viaFind.Total, viaFinder.Total)
	assert.Equal(t, len(viaFind.Items), len(viaFinder.Items))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUnlistedColumnIsForbidden(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	_, err := repo.FindBy(context.Background(), "unlisted", "x")
	require.ErrorIs(t, err, ErrColumnNotFilterable)
	assert.Contains(t, err.Error(), "cannot filter the model with column [unlisted]")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByWithoutAllowListForbidsEverything(t *testing.T) {
	repo, mock := newTestRepo(t)

	_, err := repo.FindBy(context.Background(), "status", "active")
	assert.ErrorIs(t, err, ErrColumnNotFilterable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallFinderResolvesColumn(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	expectStatusPage(mock)

	page, err := repo.CallFinder(context.Background(), "FindByStatus", "active")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallFinderAcceptsLowerCamelNames(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	expectStatusPage(mock)

	_, err := repo.CallFinder(context.Background(), "findByStatus", "active")
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallFinderUnknownMethod(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	for _, method := range []string{"DeleteByStatus", "FindBy", "Missing"} {
		_, err := repo.CallFinder(context.Background(), method, "x")
		require.ErrorIs(t, err, ErrUnknownFinder)
		assert.Contains(t, err.Error(), "cannot find method ["+method+"] on repository [users]")
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallFinderForbiddenColumn(t *testing.T) {
	repo, mock := newTestRepo(t, WithFilterable("status"))

	_, err := repo.CallFinder(context.Background(), "FindByEmail", "x")
	assert.ErrorIs(t, err, ErrColumnNotFilterable)

	assert.NoError(t, mock.ExpectationsWereMet())
}
