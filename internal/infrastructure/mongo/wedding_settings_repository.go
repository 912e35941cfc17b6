package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.WeddingSettingsRepository = (*WeddingSettingsRepo)(nil)

// WeddingSettingsRepo implementación de WeddingSettingsRepository sobre MongoDB.
type WeddingSettingsRepo struct {
	coll *mongo.Collection
}

// NewWeddingSettingsRepository construye el adaptador.
func NewWeddingSettingsRepository(db *mongo.Database) *WeddingSettingsRepo {
	return &WeddingSettingsRepo{coll: db.Collection(settingsCollection)}
}

// GetByUser obtiene la configuración del usuario.
func (r *WeddingSettingsRepo) GetByUser(ctx context.Context, userID string) (*entity.WeddingSettings, error) {
	var doc settingsDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wedding settings: %w", err)
	}
	return doc.toEntity(), nil
}

// Upsert crea o reemplaza la configuración. _id y created_at solo se escriben al insertar;
// s recibe los valores guardados.
func (r *WeddingSettingsRepo) Upsert(ctx context.Context, s *entity.WeddingSettings) error {
	images := s.BackgroundImages
	if images == nil {
		images = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"bride_name":        s.BrideName,
			"groom_name":        s.GroomName,
			"wedding_date":      s.WeddingDate,
			"background_images": images,
			"theme":             s.Theme,
			"wedding_quote":     s.WeddingQuote,
			"updated_at":        s.UpdatedAt,
		},
		"$setOnInsert": bson.M{"_id": s.ID, "created_at": s.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc settingsDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": s.UserID}, update, opts).Decode(&doc); err != nil {
		return fmt.Errorf("upsert wedding settings: %w", err)
	}
	s.ID = doc.ID
	s.CreatedAt = doc.CreatedAt
	return nil
}

// Delete elimina la configuración del usuario.
func (r *WeddingSettingsRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete wedding settings: %w", err)
	}
	return nil
}
