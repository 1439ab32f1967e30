package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sensory-safari-api/internal/domain/animals"
)

// animalRepo mantiene orden de inserción como "orden nativo" del store.
type animalRepo struct {
	mu    sync.RWMutex
	order []string // keys
	byKey map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byKey: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.Key) == "" || strings.TrimSpace(a.Name) == "" {
		return errors.New("animal key and name required")
	}
	if _, exists := r.byKey[a.Key]; exists {
		return animals.ErrDuplicate
	}
	if r.nameTaken(a.Name, "") {
		return animals.ErrDuplicate
	}
	r.byKey[a.Key] = a
	r.order = append(r.order, a.Key)
	return nil
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byKey[k])
	}
	return out, nil
}

func (r *animalRepo) GetByKey(ctx context.Context, key string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byKey[key]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byKey[a.Key]
	if !ok {
		return animals.ErrNotFound
	}
	if r.nameTaken(a.Name, a.Key) {
		return animals.ErrDuplicate
	}
	// ID y CreatedAt son inmutables.
	a.ID = current.ID
	a.CreatedAt = current.CreatedAt
	r.byKey[a.Key] = a
	return nil
}

// nameTaken requiere el lock tomado.
func (r *animalRepo) nameTaken(name, exceptKey string) bool {
	for k, it := range r.byKey {
		if k != exceptKey && it.Name == name {
			return true
		}
	}
	return false
}
