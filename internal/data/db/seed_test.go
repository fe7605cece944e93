package db

import (
	"testing"
	"time"

	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestLoadReferenceDataDefaults(t *testing.T) {
	data, err := LoadReferenceData(nil)
	if err != nil {
		t.Fatalf("LoadReferenceData: %v", err)
	}
	ids := map[int64]bool{}
	for _, s := range data.DocumentStatuses {
		ids[s.ID] = true
	}
	if !ids[types.StatusPending] || !ids[types.StatusValidated] {
		t.Fatalf("default statuses missing: %+v", data.DocumentStatuses)
	}
	if len(data.Nations) == 0 {
		t.Fatalf("expected seeded nations")
	}
}

func TestLoadReferenceDataRejectsBadISO(t *testing.T) {
	raw := []byte("nations:\n  - id: 1\n    continent_id: 1\n    name: X\n    iso_alpha_2: XYZ\n")
	if _, err := LoadReferenceData(raw); err == nil {
		t.Fatalf("expected iso validation error")
	}
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrateAll(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	data, err := LoadReferenceData(nil)
	if err != nil {
		t.Fatalf("LoadReferenceData: %v", err)
	}
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if err := SeedReferenceData(db, data, now); err != nil {
			t.Fatalf("seed pass %d: %v", i, err)
		}
	}
	var count int64
	if err := db.Model(&types.Nation{}).Count(&count).Error; err != nil {
		t.Fatalf("count nations: %v", err)
	}
	if int(count) != len(data.Nations) {
		t.Fatalf("nations: want=%d got=%d", len(data.Nations), count)
	}
	var validated types.DocumentStatus
	if err := db.First(&validated, types.StatusValidated).Error; err != nil {
		t.Fatalf("load validated status: %v", err)
	}
}
