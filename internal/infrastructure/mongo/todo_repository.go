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

var _ repository.TodoRepository = (*TodoRepo)(nil)

// TodoRepo implementación de TodoRepository sobre MongoDB. Con sess != nil cada operación
// corre dentro de la sesión (ver TxRunner).
type TodoRepo struct {
	coll *mongo.Collection
	sess mongo.Session
}

// NewTodoRepository construye el adaptador de tareas.
func NewTodoRepository(db *mongo.Database) *TodoRepo {
	return &TodoRepo{coll: db.Collection(todosCollection)}
}

// ListByUser lista en orden de creación (created_at, seq).
func (r *TodoRepo) ListByUser(ctx context.Context, userID, categoryID string) ([]*entity.Todo, error) {
	ctx = sessionCtx(ctx, r.sess)
	filter := bson.M{"user_id": userID}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	var docs []todoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	list := make([]*entity.Todo, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// GetByID obtiene una tarea del usuario.
func (r *TodoRepo) GetByID(ctx context.Context, userID, id string) (*entity.Todo, error) {
	var doc todoDoc
	err := r.coll.FindOne(sessionCtx(ctx, r.sess), bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return doc.toEntity(), nil
}

// Create inserta una tarea.
func (r *TodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	if _, err := r.coll.InsertOne(sessionCtx(ctx, r.sess), newTodoDoc(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// Update reescribe los campos editables; seq y created_at no cambian.
func (r *TodoRepo) Update(ctx context.Context, t *entity.Todo) error {
	set := bson.M{
		"text":        t.Text,
		"completed":   t.Completed,
		"category_id": t.CategoryID,
		"priority":    t.Priority,
		"notes":       t.Notes,
		"updated_at":  t.UpdatedAt,
	}
	unset := bson.M{}
	if t.ParentID != "" {
		set["parent_id"] = t.ParentID
	} else {
		unset["parent_id"] = ""
	}
	if t.DueDate != nil {
		set["due_date"] = *t.DueDate
	} else {
		unset["due_date"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.coll.UpdateOne(sessionCtx(ctx, r.sess), bson.M{"_id": t.ID, "user_id": t.UserID}, update)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Delete elimina una tarea.
func (r *TodoRepo) Delete(ctx context.Context, userID, id string) error {
	return r.DeleteMany(ctx, userID, []string{id})
}

// DeleteMany elimina las tareas indicadas del usuario.
func (r *TodoRepo) DeleteMany(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(sessionCtx(ctx, r.sess), bson.M{"user_id": userID, "_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	return nil
}

// CountByCategory cuenta las tareas que referencian la categoría.
func (r *TodoRepo) CountByCategory(ctx context.Context, userID, categoryID string) (int, error) {
	n, err := r.coll.CountDocuments(sessionCtx(ctx, r.sess), bson.M{"user_id": userID, "category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count todos by category: %w", err)
	}
	return int(n), nil
}

// StatsByUser agrupa por categoría y estado en el servidor ($group).
func (r *TodoRepo) StatsByUser(ctx context.Context, userID string) (*entity.TodoStats, error) {
	ctx = sessionCtx(ctx, r.sess)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "category_id", Value: "$category_id"},
				{Key: "completed", Value: "$completed"},
			}},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("todo stats: %w", err)
	}
	var rows []struct {
		ID struct {
			CategoryID string `bson:"category_id"`
			Completed  bool   `bson:"completed"`
		} `bson:"_id"`
		N int `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode todo stats: %w", err)
	}

	stats := &entity.TodoStats{ByCategory: make(map[string]entity.TodoCounts)}
	for _, row := range rows {
		c := stats.ByCategory[row.ID.CategoryID]
		c.Total += row.N
		stats.Total += row.N
		if row.ID.Completed {
			c.Completed += row.N
			stats.Completed += row.N
		} else {
			c.Pending += row.N
			stats.Pending += row.N
		}
		stats.ByCategory[row.ID.CategoryID] = c
	}
	return stats, nil
}
