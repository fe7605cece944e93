package db

import (
	"fmt"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"gorm.io/gorm"
)

// Models lists every table of the registry in dependency order.
func Models() []any {
	return []any{
		// Reference data
		&types.Continent{},
		&types.Nation{},
		&types.DocumentStatus{},
		&types.PersonType{},
		&types.Function{},

		// Documents
		&types.Person{},
		&types.Parish{},
		&types.Structure{},

		// Polymorphic attachments
		&types.Address{},
		&types.Contact{},
		&types.File{},

		// Relationships
		&types.PersonParish{},
		&types.PersonStructure{},
		&types.Direction{},
		&types.Mandate{},

		// Audit
		&types.StatusChange{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// EnsureRegistryIndexes adds the Postgres-only partial indexes the lookups rely on.
func EnsureRegistryIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_person_parish_live", `
			CREATE INDEX IF NOT EXISTS idx_person_parish_live
			ON person_parish(person_id, created_at DESC)
			WHERE is_deleted = false AND is_active = true;`},
		{"idx_direction_function_live", `
			CREATE INDEX IF NOT EXISTS idx_direction_function_live
			ON direction_function(direction_id)
			WHERE is_deleted = false;`},
		{"idx_address_document_live", `
			CREATE INDEX IF NOT EXISTS idx_address_document_live
			ON address(document_type, document_id)
			WHERE is_deleted = false;`},
		{"chk_person_code_matriculation_length", `
			DO $$ BEGIN
				ALTER TABLE person ADD CONSTRAINT chk_person_code_matriculation_length
				CHECK (code_matriculation IS NULL OR char_length(code_matriculation) = 10);
			EXCEPTION WHEN duplicate_object THEN NULL; END $$;`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
