package entity

import "time"

// Colores admitidos para TodoCategory.
var CategoryColors = []string{"rose", "pink", "purple", "blue", "orange", "green", "gray", "indigo"}

const (
	DefaultCategoryColor = "gray"
	DefaultCategoryIcon  = "📦"
	// FallbackCategorySlug identifica la categoría "其他事项", destino por defecto de las tareas.
	FallbackCategorySlug = "wedding-other"
)

// TodoCategory agrupa tareas de un usuario. Lista plana ordenada por Order, independiente de la jerarquía.
type TodoCategory struct {
	ID        string
	UserID    string
	Slug      string // vacío para categorías creadas por el usuario
	Name      string
	Color     string
	Icon      string
	Order     int // >= 1
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidCategoryColor indica si c es uno de CategoryColors.
func IsValidCategoryColor(c string) bool {
	for _, v := range CategoryColors {
		if v == c {
			return true
		}
	}
	return false
}

// DefaultCategory plantilla de las categorías que se crean para un usuario sin ninguna.
type DefaultCategory struct {
	Slug  string
	Name  string
	Color string
	Icon  string
	Order int
}

// DefaultCategories las ocho categorías iniciales.
var DefaultCategories = []DefaultCategory{
	{Slug: "wedding-venue", Name: "场地布置", Color: "rose", Icon: "🏰", Order: 1},
	{Slug: "wedding-clothes", Name: "服装造型", Color: "pink", Icon: "👗", Order: 2},
	{Slug: "wedding-photo", Name: "摄影摄像", Color: "purple", Icon: "📸", Order: 3},
	{Slug: "wedding-guests", Name: "宾客邀请", Color: "blue", Icon: "👥", Order: 4},
	{Slug: "wedding-food", Name: "餐饮服务", Color: "orange", Icon: "🍰", Order: 5},
	{Slug: "wedding-music", Name: "音乐娱乐", Color: "green", Icon: "🎵", Order: 6},
	{Slug: "wedding-docs", Name: "证件文书", Color: "gray", Icon: "📋", Order: 7},
	{Slug: FallbackCategorySlug, Name: "其他事项", Color: "indigo", Icon: "📦", Order: 8},
}
