package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings persisted as a JSON array
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is a persisted recipe. ID and Author are owned by the server and
// never travel through JSON in either direction.
type Recipe struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"-"`
	Author      string     `gorm:"size:255;not null;index" json:"-"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Category    string     `gorm:"size:255;not null;index" json:"category"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Ingredients StringList `gorm:"type:jsonb;not null" json:"ingredients"`
	Directions  StringList `gorm:"type:jsonb;not null" json:"directions"`
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}
