package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VideoSummaryModel is the durable record of a generated video summary.
// Redis keeps the hot copy; this table survives cache flushes.
type VideoSummaryModel struct {
	Base
	Hash      string   `json:"hash"      gorm:"uniqueIndex;not null"` // hash(videoId + lang)
	VideoID   string   `json:"video_id"  gorm:"index;not null"`
	Lang      string   `json:"lang"      gorm:"default:'default'"`
	Title     string   `json:"title"`
	Outline   string   `json:"outline"   gorm:"type:text"` // JSON-encoded outline items
	Summary   string   `json:"summary"   gorm:"type:text;not null"`
	Keywords  Keywords `json:"keywords"  gorm:"type:text"`
	Validated bool     `json:"validated" gorm:"default:false"`
}

func (VideoSummaryModel) TableName() string { return "video_summaries" }

// Keywords is the summary keyword list, stored as a JSON array column.
type Keywords []string

func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(k))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (k *Keywords) Scan(value interface{}) error {
	if k == nil {
		return fmt.Errorf("models.Keywords: Scan on nil pointer")
	}
	if value == nil {
		*k = Keywords{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models.Keywords: unsupported Scan type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*k = Keywords{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		return fmt.Errorf("models.Keywords: %w", err)
	}
	*k = arr
	return nil
}
