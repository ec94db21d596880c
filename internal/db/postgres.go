package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Supported relational drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds relational store connection parameters.
type Config struct {
	Driver        string
	DSN           string
	MaxOpenConns  int
	SlowThreshold time.Duration
	// VectorDimensions sizes the pgvector column (postgres only).
	VectorDimensions int
}

// SQL wraps the gorm handle shared by every repository.
type SQL struct {
	db     *gorm.DB
	driver string
}

// Open connects to the relational store.
func Open(cfg Config) (*SQL, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)}
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, &Error{Op: OpOpen, Err: err}
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, &Error{Op: OpOpen, Err: err}
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &SQL{db: gdb, driver: cfg.Driver}, nil
}

// Wrap adapts an existing gorm handle (used by tests).
func Wrap(gdb *gorm.DB, driver string) *SQL {
	return &SQL{db: gdb, driver: driver}
}

// DB returns the gorm handle.
func (s *SQL) DB() *gorm.DB { return s.db }

// Driver returns the configured driver name.
func (s *SQL) Driver() string { return s.driver }

// SupportsVectorSearch reports whether similarity queries can run in the database.
func (s *SQL) SupportsVectorSearch() bool { return s.driver == DriverPostgres }

// Ping checks connectivity.
func (s *SQL) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (s *SQL) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Migrate prepares the schema. SQLite gets AutoMigrate of the given models;
// PostgreSQL gets the pgvector schema, which gorm cannot express.
func (s *SQL) Migrate(ctx context.Context, dims int, models ...any) error {
	if s.driver == DriverSQLite {
		if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return &Error{Op: OpMigrate, Err: err}
		}
		return nil
	}
	if dims <= 0 {
		dims = 1536
	}
	if err := s.db.WithContext(ctx).Exec(fmt.Sprintf(postgresSchema, dims, dims)).Error; err != nil {
		return &Error{Op: OpMigrate, Err: err}
	}
	return nil
}

// postgresSchema mirrors the hosted schema. Source tables are normally owned by the
// platform; the IF NOT EXISTS clauses make local databases usable as well.
const postgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS "결재문서목록" (
    id BIGINT PRIMARY KEY,
    "제목" TEXT,
    "전체부서명" TEXT,
    "생성일자" TEXT,
    "공개여부" TEXT
);

CREATE TABLE IF NOT EXISTS pdf_documents (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title TEXT,
    content_text TEXT,
    department TEXT,
    file_name TEXT NOT NULL,
    file_path TEXT NOT NULL DEFAULT '',
    file_url TEXT,
    file_size BIGINT,
    page_count INT,
    status TEXT DEFAULT 'active',
    upload_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS "직원정보" (
    id BIGINT PRIMARY KEY,
    "담당업무" TEXT,
    "부서명" TEXT,
    "직책" TEXT,
    "전화번호" TEXT,
    "팩스번호" TEXT
);

CREATE TABLE IF NOT EXISTS document_embeddings (
    id BIGSERIAL PRIMARY KEY,
    document_id TEXT NOT NULL,
    document_title TEXT,
    document_type TEXT NOT NULL,
    department TEXT,
    content_text TEXT,
    content_hash TEXT NOT NULL DEFAULT '',
    embedding vector(%d),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS document_embeddings_document_idx
    ON document_embeddings (document_type, document_id);

CREATE TABLE IF NOT EXISTS search_logs (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    query TEXT NOT NULL,
    results_count INT,
    user_session TEXT,
    search_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS document_views (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    document_id TEXT NOT NULL,
    document_type TEXT NOT NULL,
    document_title TEXT,
    department TEXT,
    user_session TEXT,
    search_query TEXT,
    view_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS popular_statistics (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    document_id TEXT NOT NULL,
    document_type TEXT NOT NULL,
    document_title TEXT,
    department TEXT,
    view_count INT,
    weekly_views INT,
    monthly_views INT,
    weekly_growth_rate DOUBLE PRECISION,
    rank_position INT,
    last_viewed TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (document_id, document_type)
);

CREATE OR REPLACE FUNCTION search_similar_documents(
    query_embedding vector(%d),
    match_threshold DOUBLE PRECISION,
    match_count INT
)
RETURNS TABLE (
    document_id TEXT,
    document_title TEXT,
    document_type TEXT,
    department TEXT,
    content_text TEXT,
    similarity DOUBLE PRECISION
)
LANGUAGE sql STABLE
AS $$
    SELECT e.document_id, e.document_title, e.document_type, e.department, e.content_text,
           1 - (e.embedding <=> query_embedding) AS similarity
    FROM document_embeddings e
    WHERE e.embedding IS NOT NULL
      AND 1 - (e.embedding <=> query_embedding) >= match_threshold
    ORDER BY e.embedding <=> query_embedding
    LIMIT match_count;
$$;
`
