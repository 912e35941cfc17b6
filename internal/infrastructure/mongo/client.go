// Package mongo implementa los puertos de persistencia sobre MongoDB.
// Los IDs son UUID en texto (_id string) igual que en PostgreSQL, así un volcado puede pasar
// de un almacén a otro sin reescribir referencias.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/wedding-api/pkg/config"
)

// Nombres de colecciones.
const (
	usersCollection      = "users"
	todosCollection      = "todos"
	categoriesCollection = "todo_categories"
	settingsCollection   = "wedding_settings"
)

// Connect abre el cliente, verifica la conexión y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(20)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices que sostienen las reglas de unicidad y el orden de listado.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		categoriesCollection: {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "slug", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"slug": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "order", Value: 1}}},
		},
		todosCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category_id", Value: 1}}},
		},
		settingsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("índices de %s: %w", coll, err)
		}
	}
	return nil
}

// sessionCtx asocia sess (si hay) al contexto de cada operación, para que los repositorios
// creados por TxRunner escriban dentro de la transacción aunque el llamador pase su propio ctx.
func sessionCtx(ctx context.Context, sess mongo.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, sess)
}
