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

package database

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoColumnErr
	NoTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

// ClassifyError reports whether err originated in the database driver and,
// if so, the matched error kind and the driver-native numeric code. Typed
// driver errors are inspected first; for drivers without typed errors
// (sqlite via sqliteshim) the message text is matched on SQLSTATE fragments.
func ClassifyError(err error) (is bool, sqlErr SQLError, code int) {
	if err == nil {
		return false, UnknownErr, 0
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr, 0
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return true, classifyMySQLNumber(mysqlErr.Number), int(mysqlErr.Number)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		numeric, _ := strconv.Atoi(string(pqErr.Code))
		return true, classifySQLState(string(pqErr.Code)), numeric
	}

	kind, ok := classifyMessage(strings.ToLower(err.Error()))
	return ok, kind, 0
}

func classifyMySQLNumber(number uint16) SQLError {
	switch number {
	case 1054:
		return NoColumnErr
	case 1046, 1049, 1146:
		return NoTableErr
	case 1062:
		return DuplicateKeyErr
	case 1048:
		return NotNullViolationErr
	case 1216, 1217, 1451, 1452:
		return ForeignKeyViolationErr
	case 3819:
		return CheckConstraintViolationErr
	case 1265:
		return DataTruncatedErr
	default:
		return UnknownErr
	}
}

func classifySQLState(state string) SQLError {
	switch state {
	case "42703":
		return NoColumnErr
	case "42P01":
		return NoTableErr
	case "23505":
		return DuplicateKeyErr
	case "23502":
		return NotNullViolationErr
	case "23503":
		return ForeignKeyViolationErr
	case "23514":
		return CheckConstraintViolationErr
	case "22001":
		return DataTruncatedErr
	case "42804":
		return InvalidTypeCastErr
	default:
		return UnknownErr
	}
}

func classifyMessage(s string) (SQLError, bool) {
	switch {
	case strings.Contains(s, "sqlstate 42703"),
		strings.Contains(s, "undefined column"),
		strings.Contains(s, "no such column"):
		return NoColumnErr, true
	case strings.Contains(s, "sqlstate 42p01"),
		strings.Contains(s, "undefined table"),
		strings.Contains(s, "no such table"):
		return NoTableErr, true
	case strings.Contains(s, "duplicate key value"),
		strings.Contains(s, "unique constraint failed"),
		strings.Contains(s, "sqlstate 23505"):
		return DuplicateKeyErr, true
	case strings.Contains(s, "not-null constraint"),
		strings.Contains(s, "not null constraint failed"),
		strings.Contains(s, "sqlstate 23502"):
		return NotNullViolationErr, true
	case strings.Contains(s, "foreign key violation"),
		strings.Contains(s, "foreign key constraint failed"),
		strings.Contains(s, "sqlstate 23503"):
		return ForeignKeyViolationErr, true
	case strings.Contains(s, "check constraint"),
		strings.Contains(s, "sqlstate 23514"):
		return CheckConstraintViolationErr, true
	case strings.Contains(s, "string data right truncation"),
		strings.Contains(s, "sqlstate 22001"),
		strings.Contains(s, "data truncated"):
		return DataTruncatedErr, true
	case strings.Contains(s, "datatype mismatch"),
		strings.Contains(s, "sqlstate 42804"):
		return InvalidTypeCastErr, true
	case strings.Contains(s, "syntax error"),
		strings.Contains(s, "sqlstate 42601"):
		return UnknownErr, true
	}
	return UnknownErr, false
}
