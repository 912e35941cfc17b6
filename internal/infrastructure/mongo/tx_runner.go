package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/domain/repository"
)

var _ usecase.TodoTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de tareas. Con transactions=true (replica set) usa una transacción
// de sesión; si no, aplica las escrituras en orden sin rollback y serializa las llamadas del proceso.
type TxRunner struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	mu           sync.Mutex
}

// NewTxRunner construye el runner.
func NewTxRunner(client *mongo.Client, db *mongo.Database, transactions bool) *TxRunner {
	return &TxRunner{client: client, db: db, transactions: transactions}
}

// RunTodos ejecuta fn con repos atados a la sesión (si la hay).
func (r *TxRunner) RunTodos(ctx context.Context, fn func(
	todos repository.TodoRepository,
	categories repository.TodoCategoryRepository,
) error) error {
	if !r.transactions {
		r.mu.Lock()
		defer r.mu.Unlock()
		return fn(NewTodoRepository(r.db), NewTodoCategoryRepository(r.db))
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	todos := NewTodoRepository(r.db)
	todos.sess = sess
	categories := NewTodoCategoryRepository(r.db)
	categories.sess = sess

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(todos, categories)
	})
	return err
}
