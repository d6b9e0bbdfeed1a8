package helpers

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/valpere/nalsi/internal/models"
)

// MockDB represents a mocked database connection for testing
type MockDB struct {
	DB   *gorm.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB creates a new mock database connection
func NewMockDB(t testing.TB) *MockDB {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)

	return &MockDB{
		DB:   gormDB,
		Mock: mock,
	}
}

// Close closes the mock database connection
func (m *MockDB) Close() error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ExpectationsWereMet checks if all expected database interactions were met
func (m *MockDB) ExpectationsWereMet(t testing.TB) {
	require.NoError(t, m.Mock.ExpectationsWereMet())
}

// MockUser creates a mock user for testing
func MockUser(userID int64) *models.User {
	return &models.User{
		ID:        userID,
		FirstName: "Test",
		LastName:  "User",
		Username:  "testuser",
		Language:  "ko-KR",
		City:      "Seoul",
		CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AnyTime is a custom matcher for time values in SQL mocks
type AnyTime struct{}

// Match implements sqlmock.Argument
func (a AnyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}

// ExpectUserUpsert sets up expectations for RegisterUser
func (m *MockDB) ExpectUserUpsert() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`INSERT INTO "users" .* ON CONFLICT \("id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.Mock.ExpectCommit()
}

// ExpectUserFind sets up expectations for finding a user
func (m *MockDB) ExpectUserFind(userID int64, user *models.User) {
	rows := sqlmock.NewRows([]string{
		"id", "username", "first_name", "last_name", "language",
		"city", "latitude", "longitude", "has_coords",
		"created_at", "updated_at",
	}).AddRow(
		user.ID, user.Username, user.FirstName, user.LastName, user.Language,
		user.City, user.Latitude, user.Longitude, user.HasCoords,
		user.CreatedAt, user.UpdatedAt,
	)

	m.Mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs(userID, 1).
		WillReturnRows(rows)
}

// ExpectUserNotFound sets up expectations for a lookup that finds nothing
func (m *MockDB) ExpectUserNotFound(userID int64) {
	m.Mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

// ExpectUserUpdate sets up expectations for updating a user; rowsAffected 0 means no such user
func (m *MockDB) ExpectUserUpdate(rowsAffected int64) {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, rowsAffected))
	m.Mock.ExpectCommit()
}
