package testutil

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	registrydb "github.com/yungbote/membership-registry/internal/data/db"
	"github.com/yungbote/membership-registry/internal/platform/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Now is the fixed instant returned by Clock.
var Now = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

// Clock returns Now. Aggregates and the lifecycle manager take it as their time source.
func Clock() time.Time { return Now }

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private in-memory SQLite database with the full registry schema.
// The single connection keeps every statement, including grouped batch reads, on one database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := fmt.Sprintf("registry_%s_%d", sanitize(tb.Name()), dbSeq.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=off", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := registrydb.AutoMigrateAll(db); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

// QueryCounter counts SELECT statements per table once installed on a DB.
type QueryCounter struct {
	mu     sync.Mutex
	total  int
	tables map[string]int
}

// CountQueries registers a query callback on db and returns its counter.
func CountQueries(tb testing.TB, db *gorm.DB) *QueryCounter {
	tb.Helper()
	qc := &QueryCounter{tables: map[string]int{}}
	err := db.Callback().Query().After("gorm:query").Register("testutil:count_queries", func(tx *gorm.DB) {
		qc.mu.Lock()
		defer qc.mu.Unlock()
		qc.total++
		qc.tables[tx.Statement.Table]++
	})
	if err != nil {
		tb.Fatalf("register query counter: %v", err)
	}
	return qc
}

func (q *QueryCounter) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.total = 0
	q.tables = map[string]int{}
}

func (q *QueryCounter) Total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

func (q *QueryCounter) Table(name string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tables[name]
}

// FailUpdatesOn makes every UPDATE against table fail with err.
func FailUpdatesOn(tb testing.TB, db *gorm.DB, table string, err error) {
	tb.Helper()
	name := "testutil:fail_updates_" + table
	regErr := db.Callback().Update().Before("gorm:update").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	})
	if regErr != nil {
		tb.Fatalf("register update failure: %v", regErr)
	}
}
