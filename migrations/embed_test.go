package migrations

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The repos scan timestamp columns (created_at, updated_at) on nearly every
// read. A column referenced in a RETURNING or SELECT but missing from the
// DDL only surfaces as a 42703 at runtime, so pin the schema here: every
// column a repo scans must be declared in the table it scans it from.
func TestEmbeddedSchemaDeclaresScannedColumns(t *testing.T) {
	tests := []struct {
		file    string
		table   string
		columns []string
	}{
		{"00001_users.sql", "users", []string{"id", "email", "nickname", "password", "image", "created_at", "updated_at"}},
		{"00002_products.sql", "products", []string{"id", "name", "description", "price", "slug", "status", "stock", "created_at", "updated_at"}},
		{"00002_products.sql", "tags", []string{"id", "name", "created_at"}},
		{"00003_articles_comments.sql", "articles", []string{"id", "title", "content", "created_at", "updated_at"}},
		{"00003_articles_comments.sql", "comments", []string{"id", "content", "product_id", "article_id", "created_at", "updated_at"}},
		{"00004_posts.sql", "posts", []string{"id", "title", "content", "image", "author_id", "created_at", "updated_at"}},
		{"00005_refresh_tokens.sql", "refresh_tokens", []string{"token", "user_id", "created_at"}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			ddl := createTableBlock(t, tt.file, tt.table)
			for _, col := range tt.columns {
				require.Regexpf(t, `(?m)^\s*`+col+`\s`, ddl,
					"table %s does not declare column %s", tt.table, col)
			}
		})
	}
}

// createTableBlock returns the body of the CREATE TABLE statement for the
// named table inside the embedded migration file.
func createTableBlock(t *testing.T, file, table string) string {
	t.Helper()

	raw, err := FS.ReadFile(file)
	require.NoError(t, err)

	re := regexp.MustCompile(fmt.Sprintf(`(?is)CREATE TABLE %s\s*\((.*?)\);`, table))
	m := re.FindStringSubmatch(string(raw))
	require.NotNilf(t, m, "no CREATE TABLE %s in %s", table, file)
	return strings.TrimSpace(m[1])
}
