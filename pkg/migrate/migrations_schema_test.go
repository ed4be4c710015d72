package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitSchemaMigrationContainsStockConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS current_stocks",
		"FOREIGN KEY (ingredient_id) REFERENCES ingredients(id) ON DELETE CASCADE",
		"PRIMARY KEY (grn_id, ingredient_id)",
		"PRIMARY KEY (recipe_id, ingredient_id)",
		"CHECK (available_quantity >= 0)",
		"DROP TABLE IF EXISTS current_stocks",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
