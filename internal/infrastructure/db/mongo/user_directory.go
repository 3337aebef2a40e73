package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

const usersCollection = "portal_users"

// UserDirectory is the Mongo-backed append-only signup record collection.
type UserDirectory struct {
	coll *mongo.Collection
}

func NewUserDirectory(db *mongo.Database) *UserDirectory {
	return &UserDirectory{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
}

// Append inserts a new signup record. An existing record with the same
// email or phone yields domain.ErrUserExists.
func (r *UserDirectory) Append(ctx context.Context, user *domain.StoredUser) (*domain.StoredUser, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": user.Email},
		bson.M{"phone": user.Phone},
	}})
	if err != nil {
		return nil, fmt.Errorf("directory append: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrUserExists
	}

	doc := userDoc{
		FullName:     user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("directory append: %w", err)
	}

	stored := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

// FindByLogin returns the record matching emailOrPhone on either field and
// the given role. Password checking happens in the service layer.
func (r *UserDirectory) FindByLogin(ctx context.Context, emailOrPhone string, role domain.Role) (*domain.StoredUser, error) {
	filter := bson.M{
		"role": role.String(),
		"$or": bson.A{
			bson.M{"email": emailOrPhone},
			bson.M{"phone": emailOrPhone},
		},
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("directory find: %w", err)
	}
	return docToUser(&doc)
}

// FindByID returns a single record by its hex object id.
func (r *UserDirectory) FindByID(ctx context.Context, id string) (*domain.StoredUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("directory find: %w", err)
	}
	return docToUser(&doc)
}

// CountByRole aggregates record counts per role.
func (r *UserDirectory) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("directory count: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.Role]int64)
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("directory count: %w", err)
		}
		role, err := domain.ParseRole(row.Role)
		if err != nil {
			continue
		}
		counts[role] = row.Count
	}
	return counts, cur.Err()
}

// ListByRole returns all records of one role, oldest first.
func (r *UserDirectory) ListByRole(ctx context.Context, role domain.Role) ([]*domain.StoredUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"role": role.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("directory list: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.StoredUser
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("directory list: %w", err)
		}
		user, err := docToUser(&doc)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, cur.Err()
}

func docToUser(doc *userDoc) (*domain.StoredUser, error) {
	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		return nil, fmt.Errorf("directory record %s: %w", doc.ID.Hex(), err)
	}
	return &domain.StoredUser{
		ID:           doc.ID.Hex(),
		FullName:     doc.FullName,
		Email:        doc.Email,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		Role:         role,
		CreatedAt:    unixToTime(doc.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
