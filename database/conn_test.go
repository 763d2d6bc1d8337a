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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpenRejectsUnsupportedType(t *testing.T) {
	_, err := Open(&ConnectionConfig{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestOpenSQLiteInMemory(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"

	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(context.Background()))
}

func TestRelationModelRegistry(t *testing.T) {
	type joinModel struct{}

	before := len(RegisteredRelationModels())
	RegisterRelationModel((*joinModel)(nil))
	models := RegisteredRelationModels()
	assert.Len(t, models, before+1)

	// Mutating the returned slice must not affect the registry.
	models[len(models)-1] = nil
	assert.NotNil(t, RegisteredRelationModels()[before])
}

func TestHealthWithoutInit(t *testing.T) {
	status := Health(context.Background())
	require.NotNil(t, status)
	assert.False(t, status.Healthy)
	assert.Equal(t, "database not initialized", status.LastError)
}
