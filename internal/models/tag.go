package models

// Tag is a shared label that any number of users can attach to themselves.
type Tag struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// UserTag is the join row between users and tags.
type UserTag struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
	TagID  string `gorm:"type:uuid;primaryKey" json:"tag_id"`
}

// TableName pins the join table name shared with the many2many relation on User.
func (UserTag) TableName() string { return "user_tags" }

// CustomTag is a saved search: a name bound to a transaction filter term.
type CustomTag struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	SearchTerm string `gorm:"not null" json:"search_term"`
}
