package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

const collectionReservations = "reservas"

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

type reservationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Owner        string             `bson:"usuario"`
	CitizenID    string             `bson:"cedula,omitempty"`
	CustomerName string             `bson:"nombre_cliente"`
	Date         string             `bson:"fecha"`
	PartySize    int                `bson:"numero_personas"`
	Version      int64              `bson:"version"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *reservationDoc) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:           d.ID.Hex(),
		Owner:        d.Owner,
		CitizenID:    d.CitizenID,
		CustomerName: d.CustomerName,
		Date:         d.Date,
		PartySize:    d.PartySize,
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reservationDoc{
		Owner:        res.Owner,
		CitizenID:    res.CitizenID,
		CustomerName: res.CustomerName,
		Date:         res.Date,
		PartySize:    res.PartySize,
		Version:      1,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}

	out, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	created := *res
	if oid, ok := out.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	created.Version = doc.Version
	return &created, nil
}

// FindByID treats ids that are not valid ObjectIDs as missing.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reservationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReservationRepository) FindByOwner(ctx context.Context, owner string) ([]*domain.Reservation, error) {
	return r.find(ctx, bson.M{"usuario": owner})
}

func (r *ReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]*domain.Reservation, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update writes the editable fields only if the stored version still matches.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	oid, err := primitive.ObjectIDFromHex(res.ID)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "version": res.Version},
		bson.M{
			"$set": bson.M{
				"nombre_cliente":  res.CustomerName,
				"fecha":           res.Date,
				"numero_personas": res.PartySize,
				"updated_at":      res.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if out.MatchedCount == 0 {
		return domain.ErrConflict
	}

	res.Version++
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if out.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) ReassignOwner(ctx context.Context, from, to string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.UpdateMany(ctx,
		bson.M{"usuario": from},
		bson.M{"$set": bson.M{"usuario": to}, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return 0, fmt.Errorf("reassign reservations: %w", err)
	}
	return out.ModifiedCount, nil
}

func (r *ReservationRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.DeleteMany(ctx, bson.M{"usuario": owner})
	if err != nil {
		return 0, fmt.Errorf("delete reservations of owner: %w", err)
	}
	return out.DeletedCount, nil
}

// EnsureIndexes creates the lookup indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "usuario", Value: 1}}},
		{Keys: bson.D{{Key: "cedula", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
