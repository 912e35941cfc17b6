package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/wedding-api/internal/domain"
	"github.com/jhoicas/wedding-api/internal/domain/entity"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ repository.TodoCategoryRepository = (*TodoCategoryRepo)(nil)

// TodoCategoryRepo implementación de TodoCategoryRepository sobre MongoDB.
type TodoCategoryRepo struct {
	coll *mongo.Collection
	sess mongo.Session
}

// NewTodoCategoryRepository construye el adaptador.
func NewTodoCategoryRepository(db *mongo.Database) *TodoCategoryRepo {
	return &TodoCategoryRepo{coll: db.Collection(categoriesCollection)}
}

// ListByUser lista las categorías del usuario por orden.
func (r *TodoCategoryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.TodoCategory, error) {
	ctx = sessionCtx(ctx, r.sess)
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list todo categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todo categories: %w", err)
	}
	list := make([]*entity.TodoCategory, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// GetByID obtiene una categoría del usuario.
func (r *TodoCategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.TodoCategory, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

// GetBySlug obtiene una de las categorías sembradas por su slug.
func (r *TodoCategoryRepo) GetBySlug(ctx context.Context, userID, slug string) (*entity.TodoCategory, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "slug": slug})
}

// CreateMany inserta en orden; se detiene en el primer duplicado.
func (r *TodoCategoryRepo) CreateMany(ctx context.Context, categories []*entity.TodoCategory) error {
	if len(categories) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, newCategoryDoc(c))
	}
	if _, err := r.coll.InsertMany(sessionCtx(ctx, r.sess), docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert todo categories: %w", err)
	}
	return nil
}

// Create inserta una categoría.
func (r *TodoCategoryRepo) Create(ctx context.Context, c *entity.TodoCategory) error {
	if _, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), newCategoryDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert todo category: %w", err)
	}
	return nil
}

// Update reescribe nombre, color, icono y orden.
func (r *TodoCategoryRepo) Update(ctx context.Context, c *entity.TodoCategory) error {
	update := bson.M{"$set": bson.M{
		"name":       c.Name,
		"color":      c.Color,
		"icon":       c.Icon,
		"order":      c.Order,
		"updated_at": c.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(sessionCtx(ctx, r.sess), bson.M{"_id": c.ID, "user_id": c.UserID}, update)
	if err != nil {
		return fmt.Errorf("update todo category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete elimina una categoría del usuario.
func (r *TodoCategoryRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.coll.DeleteOne(sessionCtx(ctx, r.sess), bson.M{"_id": id, "user_id": userID}); err != nil {
		return fmt.Errorf("delete todo category: %w", err)
	}
	return nil
}

// MaxOrder mayor Order del usuario (0 sin categorías).
func (r *TodoCategoryRepo) MaxOrder(ctx context.Context, userID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}}).SetProjection(bson.M{"order": 1})
	var doc struct {
		Order int `bson:"order"`
	}
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), bson.M{"user_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("max todo category order: %w", err)
	}
	return doc.Order, nil
}

func (r *TodoCategoryRepo) findOne(ctx context.Context, filter bson.M) (*entity.TodoCategory, error) {
	var doc categoryDoc
	if err := r.coll.FindOne(sessionCtx(ctx, r.sess), filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo category: %w", err)
	}
	return doc.toEntity(), nil
}
