package models

import "time"

const (
	AddressTypeHome = "Home"
	AddressTypeWork = "Work"
)

type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"not null"`
	Pincode   string    `json:"pincode" gorm:"not null"`
	Locality  string    `json:"locality"`
	Address   string    `json:"address" gorm:"type:text;not null"`
	City      string    `json:"city" gorm:"not null"`
	State     string    `json:"state" gorm:"not null"`
	Landmark  string    `json:"landmark"`
	AltPhone  string    `json:"altPhone"`
	Type      string    `json:"type" gorm:"size:8;default:Home"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AddressInput struct {
	UserID   uint   `json:"userId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
	Locality string `json:"locality"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Landmark string `json:"landmark"`
	AltPhone string `json:"altPhone"`
	Type     string `json:"type" binding:"omitempty,oneof=Home Work"`
}

func (in AddressInput) ToAddress() Address {
	addressType := in.Type
	if addressType == "" {
		addressType = AddressTypeHome
	}
	return Address{
		UserID:   in.UserID,
		Name:     in.Name,
		Phone:    in.Phone,
		Pincode:  in.Pincode,
		Locality: in.Locality,
		Address:  in.Address,
		City:     in.City,
		State:    in.State,
		Landmark: in.Landmark,
		AltPhone: in.AltPhone,
		Type:     addressType,
	}
}

// AddressUpdate carries only the fields a client actually sent.
type AddressUpdate struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Pincode  *string `json:"pincode"`
	Locality *string `json:"locality"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Landmark *string `json:"landmark"`
	AltPhone *string `json:"altPhone"`
	Type     *string `json:"type" binding:"omitempty,oneof=Home Work"`
}

// Changes maps the supplied fields to their column names.
func (u AddressUpdate) Changes() map[string]any {
	changes := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			changes[column] = *value
		}
	}
	set("name", u.Name)
	set("phone", u.Phone)
	set("pincode", u.Pincode)
	set("locality", u.Locality)
	set("address", u.Address)
	set("city", u.City)
	set("state", u.State)
	set("landmark", u.Landmark)
	set("alt_phone", u.AltPhone)
	set("type", u.Type)
	return changes
}
