package model

import "time"

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserName string `gorm:"column:user_name;type:varchar(150) COLLATE utf8mb4_bin;not null;uniqueIndex" json:"username"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
