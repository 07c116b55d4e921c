package models

import "time"

// LostItem is a lost-object report. It stays in the lost_items table for its
// whole lifecycle: created unapproved, surfaced to moderators, approved into
// the public feed, and finally converted into a FoundItem when resolved.
type LostItem struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:text;not null" json:"location"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	ReportedBy  string    `gorm:"column:reported_by;index" json:"reported_by"`
	IsFound     bool      `gorm:"default:false;index" json:"is_found"`
	IsApproved  bool      `gorm:"default:false;index" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LostItem) TableName() string {
	return "lost_items"
}

// FoundItem is the terminal record for a resolved item. Rows come either from
// converting a LostItem or from a direct found-item report (no matching lost
// report). Once created it is owned independently of the source row.
type FoundItem struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:text;not null" json:"location"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	ReportedBy  string    `gorm:"column:reported_by" json:"reported_by,omitempty"`
	FoundAt     time.Time `gorm:"column:found_at;index" json:"found_at"`
}

func (FoundItem) TableName() string {
	return "found_items"
}
