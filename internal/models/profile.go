package models

import "gorm.io/datatypes"

type CreatorProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"not null"`
	Bio         string
	City        string
	Categories  datatypes.JSON `gorm:"type:jsonb"` // ["fashion", "tech", ...]
	Platforms   datatypes.JSON `gorm:"type:jsonb"` // {"instagram": "...", "youtube": "..."}
	Followers   int
	RatePerPost *float64
	IsPublic    bool `gorm:"default:true"`
}

type BrandProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	CompanyName string `gorm:"not null"`
	Website     string
	Industry    string
	City        string
	About       string
	IsVerified  bool `gorm:"default:false"`
}
