package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver do Postgres
	"github.com/xavierca1/leadgen/internal/entity"
	_ "modernc.org/sqlite" // Driver do SQLite (pure Go)
)

// Store é o dono do pool de conexões. Os repositórios são criados por ele.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open interpreta a DATABASE_URL, abre o pool e testa o Ping.
//
//	sqlite:///leads.db        -> arquivo relativo
//	sqlite:////var/lib/x.db   -> arquivo absoluto
//	sqlite:///:memory:        -> memória (uma conexão só)
//	postgres://... / postgresql://...
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	driver, dsn, d, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	// 1. Abre a conexão (ainda não conecta, só valida a string)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir banco (%s): %w", driver, err)
	}

	// 2. Pool
	switch {
	case d == dialectSQLite && strings.HasPrefix(dsn, ":memory:"):
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	case d == dialectSQLite:
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
		db.SetConnMaxLifetime(30 * time.Minute)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// 3. Ping
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping banco (%s): %w", driver, err)
	}

	return &Store{db: db, dialect: d}, nil
}

func parseDatabaseURL(raw string) (driver, dsn string, d dialect, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" || path == ":memory:" {
			path = ":memory:"
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
		return "sqlite", dsn, dialectSQLite, nil
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return "pgx", raw, dialectPostgres, nil
	case raw == "":
		return "", "", 0, fmt.Errorf("DATABASE_URL vazia")
	}
	return "", "", 0, fmt.Errorf("DATABASE_URL com esquema não suportado: %q", schemeOf(raw))
}

func schemeOf(raw string) string {
	if i := strings.Index(raw, "://"); i > 0 {
		return raw[:i]
	}
	return raw
}

// DB expõe o pool para health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Leads devolve um repositório ligado ao pool, para operações avulsas.
func (s *Store) Leads() *LeadRepository {
	return &LeadRepository{DB: s.db, dialect: s.dialect}
}

// Session reserva uma conexão dedicada para uma unidade de trabalho e a
// devolve ao pool quando fn retorna, com erro, sem erro ou em panic.
// O repositório passado para fn não pode ser usado depois do retorno.
func (s *Store) Session(ctx context.Context, fn func(repo *LeadRepository) error) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("abrir sessão: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("fechar sessão: %w", cerr)
		}
	}()

	return fn(&LeadRepository{DB: conn, dialect: s.dialect})
}

// WithLeads é Session vista pela interface do domínio.
func (s *Store) WithLeads(ctx context.Context, fn func(repo entity.LeadRepositoryInterface) error) error {
	return s.Session(ctx, func(repo *LeadRepository) error {
		return fn(repo)
	})
}
