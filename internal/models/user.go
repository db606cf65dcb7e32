package models

import "time"

type User struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;type:text;not null" json:"name"`
	Email    string `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;type:text;not null" json:"-"` // bcrypt hash

	// Set by the Facebook OAuth callback, cleared on disconnect.
	FacebookToken  *string `gorm:"column:facebook_token;type:text" json:"-"`
	FacebookUserID *string `gorm:"column:facebook_user_id;type:text" json:"facebook_user_id,omitempty"`
	FacebookName   *string `gorm:"column:facebook_name;type:text" json:"facebook_name,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) HasFacebook() bool {
	return u != nil && u.FacebookToken != nil && *u.FacebookToken != ""
}
