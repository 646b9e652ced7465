package checks

import (
	"testing"

	"animal-search-admin/core/database"
	"animal-search-admin/feature/moderation/store/sqlstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, sqlstore.Models()...)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLiteMigrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(sqlstore.Models()...))

	report, err := CheckSchema(db, sqlstore.Models()...)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Len(t, report.Tables, 3)
	assert.Equal(t, "ok", report.Tables["active_records"].Status)
}

func TestCheckSchema_SQLiteMissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db, &sqlstore.MatchRequestRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["match_requests"].Status)
}

func TestCheckSchema_MySQLDrift(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("data", "json", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `active_records`").WillReturnRows(rows)

	report, err := CheckSchema(db, &sqlstore.ActiveRecordRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["active_records"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"created_at"}, tbl.MissingColumns)
	assert.Equal(t, []string{"data: expected text, got json"}, tbl.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseGormTags(t *testing.T) {
	tag := "column:data;type:text;serializer:json"
	assert.Equal(t, "data", parseGormColumn(tag))
	assert.Equal(t, "text", parseGormType(tag))
	assert.Empty(t, parseGormType("column:id;primaryKey"))
}
