package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM children WHERE id = ?",
			want:  "SELECT * FROM children WHERE id = $1",
		},
		{
			name:  "multiple placeholders",
			query: "UPDATE activity_completions SET state = ?, reasoning = ? WHERE id = ? AND tokens_awarded = 0",
			want:  "UPDATE activity_completions SET state = $1, reasoning = $2 WHERE id = $3 AND tokens_awarded = 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestDialects(t *testing.T) {
	tests := []struct {
		name              string
		dialect           Dialect
		driver            string
		subdir            string
		lastInsertID      bool
		rewritesQuestions bool
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", "sqlite", true, false},
		{"postgres", NewPostgresDialect(), "postgres", "postgres", false, true},
		{"mysql", NewMySQLDialect(), "mysql", "mysql", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %q, want %q", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.subdir)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}

			query := "SELECT id FROM children WHERE id = ?"
			rewritten := tt.dialect.RewriteQuery(query)
			if tt.rewritesQuestions {
				if rewritten != "SELECT id FROM children WHERE id = $1" {
					t.Errorf("RewriteQuery() = %q, want numbered placeholders", rewritten)
				}
			} else if rewritten != query {
				t.Errorf("RewriteQuery() = %q, want unchanged", rewritten)
			}
		})
	}
}
