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
	"sync"
)

// Relation join models (many-to-many through tables) must be known to Bun
// before a query loads the relation, so they are collected here and handed
// to RegisterModel when a connection opens.

var (
	relationModelsMu sync.RWMutex
	relationModels   []interface{}
)

// RegisterRelationModel records struct pointers to register on every new
// connection. Call it from init functions of model packages.
func RegisterRelationModel(models ...interface{}) {
	relationModelsMu.Lock()
	defer relationModelsMu.Unlock()
	relationModels = append(relationModels, models...)
}

// RegisteredRelationModels returns a copy of the recorded models.
func RegisteredRelationModels() []interface{} {
	relationModelsMu.RLock()
	defer relationModelsMu.RUnlock()
	out := make([]interface{}, len(relationModels))
	copy(out, relationModels)
	return out
}
