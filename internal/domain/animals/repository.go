package animals

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate lo devuelven los repos cuando key o name ya existen.
	ErrDuplicate = errors.New("animal already exists")
	ErrNotFound  = errors.New("animal not found")
)

type Repository interface {
	Create(ctx context.Context, a Animal) error
	// List devuelve todos los registros en el orden nativo del store.
	List(ctx context.Context) ([]Animal, error)
	GetByKey(ctx context.Context, key string) (Animal, error)
	Update(ctx context.Context, a Animal) error
}
