package session

import "time"

// Session is a shop's installed Admin API credential.
type Session struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Shop        string    `gorm:"column:shop;size:255;index" json:"shop"`
	AccessToken string    `gorm:"column:access_token;size:255" json:"-"`
	Scope       string    `gorm:"column:scope;size:1024" json:"scope,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Session) TableName() string {
	return "sessions"
}
