package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/model"
	"github.com/sakif/salon-booking/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo reads and writes the users collection.
type UserRepo struct {
	col *mongo.Collection
}

// Create inserts a new user and populates user.ID with the store-assigned
// ObjectID. Email uniqueness is NOT enforced here — the signup flow checks
// with GetByEmail first.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("mongodb: inserting user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid

	return nil
}

// GetByEmail looks up a user by exact email match (case-sensitive, exactly
// as stored). Returns apperror.ErrNotFound if no user has that email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("mongodb: getting user by email: %w", err)
	}
	return &u, nil
}

// GetByID looks up a user by the hex form of its ObjectID. An id that is
// not valid hex cannot name any stored user, so it maps to NotFound too.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("user", id)
	}

	var u model.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("mongodb: getting user %s: %w", id, err)
	}
	return &u, nil
}
