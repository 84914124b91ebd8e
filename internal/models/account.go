package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	Base
	Name         string    `gorm:"not null;size:100" json:"name" example:"Jane Doe"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email" example:"jane@example.com"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:user;size:20" json:"role" example:"user"`
	Profiles     []Profile `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"profiles,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// FindProfile returns the profile with the given id from the loaded
// collection, or nil when the account does not own it.
func (a *Account) FindProfile(profileID uint) *Profile {
	for i := range a.Profiles {
		if a.Profiles[i].ID == profileID {
			return &a.Profiles[i]
		}
	}
	return nil
}
