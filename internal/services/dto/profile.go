package dto

// UpdateCreatorProfileRequest - создание/обновление профиля креатора
type UpdateCreatorProfileRequest struct {
	DisplayName string   `json:"display_name" binding:"required,min=2,max=100"`
	Bio         string   `json:"bio" binding:"omitempty,max=2000"`
	City        string   `json:"city" binding:"omitempty,max=100"`
	Categories  []string `json:"categories" binding:"omitempty,max=10"`
	Platforms   []string `json:"platforms" binding:"omitempty,max=10,dive,oneof=instagram youtube tiktok twitter other"`
	Followers   int      `json:"followers" binding:"omitempty,min=0"`
	RatePerPost *float64 `json:"rate_per_post" binding:"omitempty,gt=0"`
	IsPublic    *bool    `json:"is_public"`
}

// UpdateBrandProfileRequest - создание/обновление профиля бренда
type UpdateBrandProfileRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=150"`
	Website     string `json:"website" binding:"omitempty,url"`
	Industry    string `json:"industry" binding:"omitempty,max=100"`
	City        string `json:"city" binding:"omitempty,max=100"`
	About       string `json:"about" binding:"omitempty,max=2000"`
}

// CreatorProfileResponse - публичный вид профиля креатора
type CreatorProfileResponse struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio,omitempty"`
	City        string   `json:"city,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Followers   int      `json:"followers"`
	RatePerPost *float64 `json:"rate_per_post,omitempty"`
	IsPublic    bool     `json:"is_public"`
	IsVerified  bool     `json:"is_verified"`
}

// BrandProfileResponse - публичный вид профиля бренда
type BrandProfileResponse struct {
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	City        string `json:"city,omitempty"`
	About       string `json:"about,omitempty"`
	IsVerified  bool   `json:"is_verified"`
}

// CreatorSearchCriteria - фильтр каталога креаторов
type CreatorSearchCriteria struct {
	Pagination
	Category     string `form:"category"`
	Platform     string `form:"platform"`
	City         string `form:"city"`
	MinFollowers int    `form:"min_followers" binding:"omitempty,min=0"`
}

// CreatorListResponse - страница каталога креаторов
type CreatorListResponse struct {
	Creators []CreatorProfileResponse `json:"creators"`
	Meta     ListMeta                 `json:"meta"`
}
