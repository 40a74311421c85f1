package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// InitSchema cria a tabela leads e o índice de email se ainda não existirem.
// Chamar de novo não faz nada.
func (s *Store) InitSchema(ctx context.Context) error {
	content, err := schemaFS.ReadFile("schema/" + s.dialect.String() + ".sql")
	if err != nil {
		return fmt.Errorf("ler schema %s: %w", s.dialect, err)
	}

	for _, stmt := range splitStatements(string(content)) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar schema: %w", err)
		}
	}
	return nil
}

func splitStatements(content string) []string {
	var out []string
	for _, part := range strings.Split(content, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
