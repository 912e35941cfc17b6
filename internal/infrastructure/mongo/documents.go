package mongo

import (
	"sync/atomic"
	"time"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type todoDoc struct {
	ID         string     `bson:"_id"`
	UserID     string     `bson:"user_id"`
	Text       string     `bson:"text"`
	Completed  bool       `bson:"completed"`
	CategoryID string     `bson:"category_id"`
	Priority   string     `bson:"priority"`
	ParentID   string     `bson:"parent_id,omitempty"`
	Notes      string     `bson:"notes,omitempty"`
	DueDate    *time.Time `bson:"due_date,omitempty"`
	Seq        int64      `bson:"seq"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
}

func newTodoDoc(t *entity.Todo) todoDoc {
	return todoDoc{
		ID:         t.ID,
		UserID:     t.UserID,
		Text:       t.Text,
		Completed:  t.Completed,
		CategoryID: t.CategoryID,
		Priority:   t.Priority,
		ParentID:   t.ParentID,
		Notes:      t.Notes,
		DueDate:    t.DueDate,
		Seq:        nextSeq(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (d todoDoc) toEntity() *entity.Todo {
	return &entity.Todo{
		ID:         d.ID,
		UserID:     d.UserID,
		Text:       d.Text,
		Completed:  d.Completed,
		CategoryID: d.CategoryID,
		Priority:   d.Priority,
		ParentID:   d.ParentID,
		Notes:      d.Notes,
		DueDate:    d.DueDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type categoryDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Slug      string    `bson:"slug,omitempty"`
	Name      string    `bson:"name"`
	Color     string    `bson:"color"`
	Icon      string    `bson:"icon"`
	Order     int       `bson:"order"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newCategoryDoc(c *entity.TodoCategory) categoryDoc {
	return categoryDoc{
		ID:        c.ID,
		UserID:    c.UserID,
		Slug:      c.Slug,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d categoryDoc) toEntity() *entity.TodoCategory {
	return &entity.TodoCategory{
		ID:        d.ID,
		UserID:    d.UserID,
		Slug:      d.Slug,
		Name:      d.Name,
		Color:     d.Color,
		Icon:      d.Icon,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type settingsDoc struct {
	ID               string    `bson:"_id"`
	UserID           string    `bson:"user_id"`
	BrideName        string    `bson:"bride_name"`
	GroomName        string    `bson:"groom_name"`
	WeddingDate      time.Time `bson:"wedding_date"`
	BackgroundImages []string  `bson:"background_images"`
	Theme            string    `bson:"theme"`
	WeddingQuote     string    `bson:"wedding_quote"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func (d settingsDoc) toEntity() *entity.WeddingSettings {
	images := d.BackgroundImages
	if images == nil {
		images = []string{}
	}
	return &entity.WeddingSettings{
		ID:               d.ID,
		UserID:           d.UserID,
		BrideName:        d.BrideName,
		GroomName:        d.GroomName,
		WeddingDate:      d.WeddingDate,
		BackgroundImages: images,
		Theme:            d.Theme,
		WeddingQuote:     d.WeddingQuote,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

var lastSeq atomic.Int64

// nextSeq valor creciente para desempatar tareas con el mismo created_at
// (BSON guarda las fechas con precisión de milisegundos).
func nextSeq() int64 {
	for {
		prev := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastSeq.CompareAndSwap(prev, next) {
			return next
		}
	}
}
