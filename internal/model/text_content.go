package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FormattingOptions stores editor presentation settings as a JSON column,
// e.g. {"font_size": 16, "font_family": "Arial"}.
type FormattingOptions map[string]interface{}

// Value implements driver.Valuer for storage as JSON.
func (o FormattingOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner.
func (o *FormattingOptions) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for formatting options", value)
	}
	return json.Unmarshal(data, o)
}

// TextContent is the versioned text body of a course. Each course holds at
// most one row; saving again replaces the text and carries the version
// supplied by the editor.
type TextContent struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	CourseID          uint              `json:"course_id" gorm:"not null;index"`
	RawText           string            `json:"raw_text" gorm:"type:text"`
	FormattedText     string            `json:"formatted_text" gorm:"type:text"`
	FormattingOptions FormattingOptions `json:"formatting_options" gorm:"type:json"`
	Version           int               `json:"version" gorm:"not null;default:1"`
	Published         bool              `json:"published" gorm:"default:false"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
