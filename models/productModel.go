package models

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	LegacyID     string                      `json:"_id" gorm:"-"`
	Name         string                      `json:"name" gorm:"not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Price        int                         `json:"price" gorm:"not null"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	Features     datatypes.JSONSlice[string] `json:"features"`
	InStock      bool                        `json:"inStock" gorm:"default:true"`
	Rating       float64                     `json:"rating" gorm:"default:0"`
	ReviewsCount int                         `json:"reviewsCount" gorm:"default:0"`
	Reviews      []Review                    `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// legacyID renders a primary key the way the storefront's "_id" field expects it.
func legacyID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.LegacyID = legacyID(p.ID)
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.LegacyID = legacyID(p.ID)
	return nil
}
