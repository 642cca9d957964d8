package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/database"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database with the schema migrated.
// Each call gets its own database so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Clock is a controllable time source for services under test. It is safe
// for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock fixed at the given instant
func NewClock(at time.Time) *Clock {
	return &Clock{now: at.UTC()}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// CreateQuoteRequest inserts a request directly, bypassing the service
func CreateQuoteRequest(t *testing.T, db *gorm.DB, ownerID uuid.UUID, status domain.QuoteRequestStatus) *domain.QuoteRequest {
	t.Helper()
	qr := &domain.QuoteRequest{
		OwnerID: ownerID,
		Vehicle: domain.VehicleDescriptor{
			Make:    "Hyundai",
			Model:   "Avante",
			Year:    2019,
			Mileage: 42000,
		},
		Description: "Brake pads squeal when stopping",
		Category:    "brakes",
		Location:    "Seoul",
		ImageRefs:   []string{},
		Status:      status,
		Version:     1,
	}
	require.NoError(t, db.Create(qr).Error)
	return qr
}
