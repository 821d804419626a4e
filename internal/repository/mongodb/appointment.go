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

// compile-time check that *AppointmentRepo implements repository.AppointmentRepository
var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo reads and writes the appointments collection.
type AppointmentRepo struct {
	col *mongo.Collection
}

// Create inserts a new appointment and populates appt.ID with the
// store-assigned ObjectID. The slot availability check happens in the
// service BEFORE this call; there is no storage-level constraint backing it.
func (r *AppointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	res, err := r.col.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("mongodb: inserting appointment: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	appt.ID = oid

	return nil
}

// GetByID retrieves a single appointment by the hex form of its ObjectID.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("appointment", id)
	}

	var a model.Appointment
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("mongodb: getting appointment %s: %w", id, err)
	}
	return &a, nil
}

// List returns every appointment in the collection in natural (insertion)
// order. The listing page renders everything; there is no pagination.
func (r *AppointmentRepo) List(ctx context.Context) ([]model.Appointment, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []model.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("mongodb: decoding appointments: %w", err)
	}
	return appts, nil
}

// FindBySlot performs the availability check: an exact match on the
// (barber, date, time) triple. Returns apperror.ErrNotFound when the slot
// is free.
func (r *AppointmentRepo) FindBySlot(ctx context.Context, barber, date, timeOfDay string) (*model.Appointment, error) {
	var a model.Appointment
	err := r.col.FindOne(ctx, bson.M{
		"barber": barber,
		"date":   date,
		"time":   timeOfDay,
	}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("appointment", barber+"/"+date+"/"+timeOfDay)
		}
		return nil, fmt.Errorf("mongodb: finding slot %s %s %s: %w", barber, date, timeOfDay, err)
	}
	return &a, nil
}

// Update overwrites the editable fields of an appointment in place.
// Barber and cost are deliberately absent from the $set document: the edit
// form does not offer a barber change, and cost is never recomputed.
func (r *AppointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": appt.ID},
		bson.M{"$set": bson.M{
			"name":    appt.Name,
			"email":   appt.Email,
			"phone":   appt.Phone,
			"service": appt.Service,
			"date":    appt.Date,
			"time":    appt.Time,
		}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: updating appointment %s: %w", appt.ID.Hex(), err)
	}

	if res.MatchedCount == 0 {
		return apperror.NotFound("appointment", appt.ID.Hex())
	}

	return nil
}

// Delete removes an appointment by id. A missing or malformed id deletes
// nothing and returns nil — delete is a silent no-op on unknown ids.
func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongodb: deleting appointment %s: %w", id, err)
	}
	return nil
}
