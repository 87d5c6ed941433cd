package checks

import (
	"testing"

	"ingress-identity/core/database"

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

func TestCheckSettingsSchema_NilDB(t *testing.T) {
	report, err := CheckSettingsSchema(nil)
	assert.ErrorIs(t, err, ErrDatabaseDisabled)
	assert.Nil(t, report)
}

func TestCheckSettingsSchema_Matched(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("name", "varchar(191)", "NO", "PRI", nil, "")
	rows.AddRow("value", "text", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `settings`").WillReturnRows(rows)

	report, err := CheckSettingsSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSettingsSchema_MissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("name", "varchar(191)", "NO", "PRI", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `settings`").WillReturnRows(rows)

	report, err := CheckSettingsSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"value"}, report.MissingColumns)
}

func TestCheckSettingsSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSettingsSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.ElementsMatch(t, []string{"name", "value"}, report.MissingColumns)
}
