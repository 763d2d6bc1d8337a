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
	"errors"
	"fmt"

	"github.com/QuincePHP/eloquent-base-repository/database"
)

var (
	// ErrInvalidFilter reports a filter specification that is not a dense
	// list of (column, operator, value) entries.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidArgument reports a malformed relation specification.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownFinder reports a finder method name without a FindBy prefix.
	ErrUnknownFinder = errors.New("unknown finder")

	// ErrColumnNotFilterable reports a finder column outside the allow-list.
	ErrColumnNotFilterable = errors.New("column not filterable")
)

// Error is the uniform error surfaced for every store-level failure. It
// preserves the driver message and, when the driver exposes one, the
// driver-native numeric code.
type Error struct {
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("repository: %s (code %d)", e.Message, e.Code)
	}
	return "repository: " + e.Message
}

// translate converts store-level failures into *Error and passes every
// other error through unmodified. Filter, argument, and finder errors never
// reach it: they are raised before the store is touched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if is, _, code := database.ClassifyError(err); is {
		return &Error{Message: err.Error(), Code: code}
	}
	return err
}
