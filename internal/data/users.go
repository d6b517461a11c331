// Package data provides DB models and stores.
package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersStore performs user DB operations.
type UsersStore struct {
	// coll is reference to "User" collection in MongoDB
	coll *mongo.Collection
}

// NewUsersStore returns a UsersStore using the provided collection.
func NewUsersStore(coll *mongo.Collection) *UsersStore {
	return &UsersStore{coll: coll}
}

// CreateUser inserts a new user document. The caller is expected to have
// normalized username and password already; DateJoined is stamped here.
// Returns ErrDuplicate when the unique username index rejects the insert.
func (u *UsersStore) CreateUser(ctx context.Context, username, password string) (*User, error) {
	user := &User{
		Username:   username,
		Password:   password,
		DateJoined: time.Now(),
	}

	// InsertOne adds the document; a duplicate username trips the unique
	// index created in db.CreateIndexes.
	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	// MongoDB auto-generates the _id field; extract it and set on the struct.
	user.ID = result.InsertedID.(bson.ObjectID)

	return user, nil
}

// GetUserByUsername finds a user by username.
func (u *UsersStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User

	err := u.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// DeleteUserByUsername atomically removes the matching user document and
// returns it. FindOneAndDelete is a single server-side operation, so two
// concurrent deletes of the same username cannot both observe the record.
func (u *UsersStore) DeleteUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User

	err := u.coll.FindOneAndDelete(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUser atomically applies the present fields of patch to the
// matching user and returns the post-update document. An empty patch
// degrades to a plain lookup: MongoDB rejects an empty $set, and the
// caller still expects the current record back.
func (u *UsersStore) UpdateUser(ctx context.Context, username string, patch UserPatch) (*User, error) {
	set := bson.M{}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if len(set) == 0 {
		return u.GetUserByUsername(ctx, username)
	}

	// ReturnDocument(After) makes find-and-update a single atomic step
	// that yields the record as it exists after the patch.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := u.coll.FindOneAndUpdate(ctx, bson.M{"username": username}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		// Renaming onto an existing username trips the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &user, nil
}
