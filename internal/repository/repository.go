// Package repository declares the store interfaces the service layer
// depends on. The concrete implementation lives in repository/mongodb;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/salon-booking/internal/model"
)

// UserRepository reads and writes user documents.
//
// Create does NOT guard against duplicate emails — the signup flow performs
// an exact-match GetByEmail immediately before inserting, and that check is
// the only uniqueness enforcement (a concurrent signup race is accepted).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AppointmentRepository reads and writes appointment documents.
//
// FindBySlot is the availability check: an exact match on the
// (barber, date, time) triple. It returns apperror.ErrNotFound when the slot
// is free. Delete is an unconditional remove — deleting an id that does not
// exist is a silent no-op, not an error.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
	FindBySlot(ctx context.Context, barber, date, timeOfDay string) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error
}
