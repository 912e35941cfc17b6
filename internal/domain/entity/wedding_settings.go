package entity

import "time"

// Temas de la página de inicio.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MaxBackgroundImages límite de imágenes de fondo del carrusel.
const MaxBackgroundImages = 6

// Valores por defecto de WeddingSettings.
const (
	DefaultBrideName    = "新娘"
	DefaultGroomName    = "新郎"
	DefaultWeddingQuote = "执子之手，与子偕老"
)

// DefaultBackgroundImages imágenes del carrusel cuando el usuario no ha subido ninguna.
var DefaultBackgroundImages = []string{
	"https://images.unsplash.com/photo-1519741497674-611481863552?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
	"https://images.unsplash.com/photo-1516571749851-9cf07e95ff23?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
	"https://images.unsplash.com/photo-1469371670807-013ccf25f16a?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
}

// WeddingSettings configuración de la página de cuenta regresiva (una por usuario).
type WeddingSettings struct {
	ID               string
	UserID           string
	BrideName        string
	GroomName        string
	WeddingDate      time.Time
	BackgroundImages []string // URLs o data URIs
	Theme            string   // light, dark
	WeddingQuote     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
