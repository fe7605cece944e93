package db

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
)

//go:embed seed/reference_data.yaml
var referenceDataYAML []byte

type ReferenceData struct {
	DocumentStatuses []struct {
		ID           int64   `yaml:"id"`
		Name         string  `yaml:"name"`
		Description  *string `yaml:"description"`
		DocumentType *int    `yaml:"document_type"`
	} `yaml:"document_statuses"`
	PersonTypes []struct {
		ID   int64  `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"person_types"`
	Continents []struct {
		ID   int64  `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"continents"`
	Nations []struct {
		ID          int64   `yaml:"id"`
		ContinentID int64   `yaml:"continent_id"`
		Name        string  `yaml:"name"`
		ISOAlpha2   *string `yaml:"iso_alpha_2"`
	} `yaml:"nations"`
}

// LoadReferenceData parses raw, or the embedded defaults when raw is empty.
func LoadReferenceData(raw []byte) (*ReferenceData, error) {
	if len(raw) == 0 {
		raw = referenceDataYAML
	}
	var out ReferenceData
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}
	for _, n := range out.Nations {
		if n.ISOAlpha2 != nil && len(*n.ISOAlpha2) != 2 {
			return nil, fmt.Errorf("nation %d: iso_alpha_2 %q is not two letters", n.ID, *n.ISOAlpha2)
		}
	}
	return &out, nil
}

// SeedReferenceData inserts the reference rows, leaving existing ids untouched.
func SeedReferenceData(db *gorm.DB, data *ReferenceData, now time.Time) error {
	if data == nil {
		return nil
	}
	lc := types.NewLifecycle(now)
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range data.DocumentStatuses {
			row := &types.DocumentStatus{ID: s.ID, Name: s.Name, Description: s.Description, Lifecycle: lc}
			if s.DocumentType != nil {
				dt := types.DocumentType(*s.DocumentType)
				row.DocumentType = &dt
			}
			if err := tx.Clauses(onConflict).Create(row).Error; err != nil {
				return fmt.Errorf("seed document_status %d: %w", s.ID, err)
			}
		}
		for _, p := range data.PersonTypes {
			row := &types.PersonType{ID: p.ID, Name: p.Name, Lifecycle: lc}
			if err := tx.Clauses(onConflict).Create(row).Error; err != nil {
				return fmt.Errorf("seed person_type %d: %w", p.ID, err)
			}
		}
		for _, c := range data.Continents {
			row := &types.Continent{ID: c.ID, Name: c.Name, Lifecycle: lc}
			if err := tx.Clauses(onConflict).Create(row).Error; err != nil {
				return fmt.Errorf("seed continent %d: %w", c.ID, err)
			}
		}
		for _, n := range data.Nations {
			row := &types.Nation{ID: n.ID, ContinentID: n.ContinentID, Name: n.Name, ISOAlpha2: n.ISOAlpha2, Lifecycle: lc}
			if err := tx.Clauses(onConflict).Create(row).Error; err != nil {
				return fmt.Errorf("seed nation %d: %w", n.ID, err)
			}
		}
		return nil
	})
}
