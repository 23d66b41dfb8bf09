package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered list of strings persisted as a JSON column,
// backed by gorm.io/datatypes for serialization.
type StringList []string

// Value implements the driver.Valuer interface.
func (s StringList) Value() (driver.Value, error) {
	return datatypes.JSONSlice[string](s).Value()
}

// Scan implements the sql.Scanner interface.
func (s *StringList) Scan(value interface{}) error {
	return (*datatypes.JSONSlice[string])(s).Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database
// driver. This resolves the issue where MSSQL does not support the 'json'
// data type.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
