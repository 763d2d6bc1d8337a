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
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"
)

var (
	globalMu sync.RWMutex
	globalDB *bun.DB
)

// Open creates a Bun database from the connection configuration, applying
// pool settings and query hooks. It does not touch the global connection.
func Open(cfg *ConnectionConfig) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	sqldb, dialect, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	db := bun.NewDB(sqldb, dialect)
	if cfg.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	if cfg.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(cfg.SlowQueryTime, GetLogger()))
	}
	if models := RegisteredRelationModels(); len(models) > 0 {
		db.RegisterModel(models...)
	}
	return db, nil
}

func openSQL(cfg *ConnectionConfig) (*sql.DB, schema.Dialect, error) {
	switch cfg.Type {
	case "mysql":
		charset := cfg.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, charset)
		sqldb, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mysql connection: %w", err)
		}
		return sqldb, mysqldialect.New(), nil
	case "postgres":
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBName, sslmode)
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		return sqldb, pgdialect.New(), nil
	case "sqlite":
		dsn := cfg.DBName
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite connection: %w", err)
		}
		return sqldb, sqlitedialect.New(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s, supported types: [mysql postgres sqlite]", cfg.Type)
	}
}

// Init opens the global database connection from the configuration and
// verifies it with a ping.
func Init(cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	applyEnvOverrides(&cfg.Connection)

	db, err := Open(&cfg.Connection)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Connection.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	globalMu.Lock()
	globalDB = db
	globalMu.Unlock()

	GetLogger().Info("Database initialization completed!", "type", cfg.Connection.Type)
	return db, nil
}

// GetDB returns the global Bun database instance, or nil before Init.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalDB
}

// Close closes the global database connection.
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalDB == nil {
		return nil
	}
	err := globalDB.Close()
	globalDB = nil
	return err
}

// Health pings the database and reports connection pool status.
func Health(ctx context.Context) *HealthStatus {
	db := GetDB()
	status := &HealthStatus{LastCheckTime: time.Now()}
	if db == nil {
		status.LastError = "database not initialized"
		return status
	}

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		status.LastError = err.Error()
		return status
	}
	stats := db.DB.Stats()

	status.Healthy = true
	status.Connected = true
	status.ResponseTime = time.Since(start)
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}
