package models

// Gender is the self-described gender of a user, used to pick a default avatar.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderDiverse Gender = "diverse"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderDiverse:
		return true
	}
	return false
}

// User represents the user model in the database
type User struct {
	Base
	Username       string        `gorm:"uniqueIndex;not null" json:"username"`
	Name           string        `gorm:"not null" json:"name"`
	Password       string        `gorm:"not null" json:"-"`
	ProfilePicture string        `gorm:"not null;default:''" json:"profile_picture"`
	Gender         Gender        `gorm:"not null" json:"gender"`
	Tags           []Tag         `gorm:"many2many:user_tags" json:"tags,omitempty"`
	Transactions   []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
