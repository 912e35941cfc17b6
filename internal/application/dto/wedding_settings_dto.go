package dto

import "time"

// UpsertWeddingSettingsRequest entrada de PUT /wedding-settings. Los campos ausentes conservan
// su valor actual (o el valor por defecto si aún no existe configuración).
type UpsertWeddingSettingsRequest struct {
	BrideName        *string    `json:"brideName" validate:"omitempty,max=50"`
	GroomName        *string    `json:"groomName" validate:"omitempty,max=50"`
	WeddingDate      *time.Time `json:"weddingDate"`
	BackgroundImages []string   `json:"backgroundImages" validate:"omitempty,dive,required"`
	Theme            *string    `json:"theme" validate:"omitempty,oneof=light dark"`
	WeddingQuote     *string    `json:"weddingQuote" validate:"omitempty,max=200"`
}

// WeddingSettingsResponse salida de la configuración de boda.
type WeddingSettingsResponse struct {
	ID               string    `json:"id"`
	BrideName        string    `json:"brideName"`
	GroomName        string    `json:"groomName"`
	WeddingDate      time.Time `json:"weddingDate"`
	BackgroundImages []string  `json:"backgroundImages"`
	Theme            string    `json:"theme"`
	WeddingQuote     string    `json:"weddingQuote"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CountdownResponse tiempo restante hasta la boda. Todo en cero si la fecha ya pasó.
type CountdownResponse struct {
	WeddingDate time.Time `json:"weddingDate"`
	Days        int       `json:"days"`
	Hours       int       `json:"hours"`
	Minutes     int       `json:"minutes"`
	Seconds     int       `json:"seconds"`
	Passed      bool      `json:"passed"`
}
