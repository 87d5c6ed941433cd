package checks

import (
	"errors"
	"fmt"

	"ingress-identity/core/database"
	"ingress-identity/core/settings"

	"gorm.io/gorm"
)

// ErrDatabaseDisabled is returned when no database is configured.
var ErrDatabaseDisabled = errors.New("database is disabled")

// SchemaReport is the result of a settings schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}

// CheckSettingsSchema verifies that the settings table has every expected column.
func CheckSettingsSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, ErrDatabaseDisabled
	}
	table := settings.Setting{}.TableName()
	report := &SchemaReport{
		Table:          table,
		Matched:        true,
		MissingColumns: []string{},
		Errors:         []string{},
	}

	missing, err := database.MissingColumns(db, table, settings.Columns)
	if err != nil {
		report.Matched = false
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		return report, nil
	}
	if len(missing) > 0 {
		report.Matched = false
		report.MissingColumns = missing
	}
	return report, nil
}
