package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email" gorm:"size:191;uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address" gorm:"type:text"`
	Pincode        string    `json:"pincode"`
	Role           string    `json:"role" gorm:"default:user"`
	ProfilePicture string    `json:"profilePicture"`
	Addresses      []Address `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type RegisterData struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileData struct {
	UserID  uint   `json:"userId" binding:"required"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}

// UserSummary is the shape returned alongside a freshly issued token.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserProfile struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Pincode        string `json:"pincode"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u User) Profile() UserProfile {
	return UserProfile{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Address:        u.Address,
		Pincode:        u.Pincode,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}

// ApplyProfile copies the non-empty fields of data onto u.
func (u *User) ApplyProfile(data ProfileData) {
	if data.Name != "" {
		u.Name = data.Name
	}
	if data.Phone != "" {
		u.Phone = data.Phone
	}
	if data.Address != "" {
		u.Address = data.Address
	}
	if data.Pincode != "" {
		u.Pincode = data.Pincode
	}
}
