// Package mongodb implements the repository interfaces against a MongoDB
// document store using the official driver.
//
// The store is external: this package only holds a client. Ids are the
// store-assigned ObjectIDs, referenced as hex strings everywhere above the
// repository layer. No uniqueness constraints are created server-side — the
// email and slot checks are application-level pre-insert lookups, so they
// are only as strong as the absence of concurrent writers.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"

	connectTimeout = 10 * time.Second
)

// DB wraps the Mongo client and exposes one repository per collection.
// The repositories are separate types rather than methods on DB itself so
// each can satisfy its interface without the method sets colliding.
type DB struct {
	client       *mongo.Client
	users        *UserRepo
	appointments *AppointmentRepo
}

// New connects to the document store at the given URI and verifies the
// connection with a ping. mongo.Connect alone does not touch the network;
// without the ping a bad URI would only surface on the first query.
func New(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting to %s: %w", uri, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: pinging database: %w", err)
	}

	db := client.Database(database)
	return &DB{
		client:       client,
		users:        &UserRepo{col: db.Collection(usersCollection)},
		appointments: &AppointmentRepo{col: db.Collection(appointmentsCollection)},
	}, nil
}

// Users returns the user repository.
func (db *DB) Users() *UserRepo {
	return db.users
}

// Appointments returns the appointment repository.
func (db *DB) Appointments() *AppointmentRepo {
	return db.appointments
}

// Close disconnects from the store. Called during graceful shutdown after
// in-flight requests have drained.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
