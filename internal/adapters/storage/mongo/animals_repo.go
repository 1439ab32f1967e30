package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"sensory-safari-api/internal/domain/animals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mediaDoc struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

// animalDoc es el documento persistido. _id puede ser string (uuid) o
// ObjectID en documentos creados antes de este servicio.
type animalDoc struct {
	ID          any       `bson:"_id"`
	Key         string    `bson:"key,omitempty"`
	Name        string    `bson:"name"`
	Category    string    `bson:"category"`
	Habitat     string    `bson:"habitat"`
	Facts       string    `bson:"facts"`
	Description string    `bson:"description"`
	Image       mediaDoc  `bson:"image"`
	Audio       mediaDoc  `bson:"audio"`
	CreatedAt   time.Time `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty"`
}

type AnimalsRepo struct {
	coll *mongo.Collection
}

func NewAnimalsRepo(coll *mongo.Collection) *AnimalsRepo {
	return &AnimalsRepo{coll: coll}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.coll.InsertOne(ctx, toDoc(a))
	if mongo.IsDuplicateKeyError(err) {
		return animals.ErrDuplicate
	}
	return err
}

// List usa el orden natural de la colección.
func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []animalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]animals.Animal, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

func (r *AnimalsRepo) GetByKey(ctx context.Context, key string) (animals.Animal, error) {
	if strings.TrimSpace(key) == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	var d animalDoc
	if err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return fromDoc(d), nil
}

// Update setea también key, así los documentos antiguos quedan con
// identificador estable antes de que cambie el name.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.coll.UpdateOne(ctx, keyFilter(a.Key), bson.M{"$set": bson.M{
		"key":         a.Key,
		"name":        a.Name,
		"category":    string(a.Category),
		"habitat":     a.Habitat,
		"facts":       a.Facts,
		"description": a.Description,
		"updatedAt":   a.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return animals.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return animals.ErrNotFound
	}
	return nil
}

// keyFilter: documentos sin key usan name como identificador.
func keyFilter(key string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"key": key},
		bson.M{"key": bson.M{"$exists": false}, "name": key},
	}}
}

func toDoc(a animals.Animal) animalDoc {
	return animalDoc{
		ID:          a.ID,
		Key:         a.Key,
		Name:        a.Name,
		Category:    string(a.Category),
		Habitat:     a.Habitat,
		Facts:       a.Facts,
		Description: a.Description,
		Image:       mediaDoc{URL: a.Image.URL, PublicID: a.Image.AssetID},
		Audio:       mediaDoc{URL: a.Audio.URL, PublicID: a.Audio.AssetID},
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromDoc(d animalDoc) animals.Animal {
	key := d.Key
	if key == "" {
		key = d.Name
	}
	category := animals.Category(d.Category)
	if category == "" {
		category = animals.DefaultCategory
	}
	return animals.Animal{
		ID:          idString(d.ID),
		Key:         key,
		Name:        d.Name,
		Category:    category,
		Habitat:     d.Habitat,
		Facts:       d.Facts,
		Description: d.Description,
		Image:       animals.Media{URL: d.Image.URL, AssetID: d.Image.PublicID},
		Audio:       animals.Media{URL: d.Audio.URL, AssetID: d.Audio.PublicID},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return ""
	}
}
