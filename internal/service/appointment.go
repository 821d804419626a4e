package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/model"
	"github.com/sakif/salon-booking/internal/repository"
)

// BookingInput carries the seven booking form fields. Every field is
// required; a missing one aborts the request before the store is touched.
type BookingInput struct {
	Name    string
	Email   string
	Phone   string
	Barber  string
	Service string
	Date    string
	Time    string
}

// EditInput carries the editable appointment fields. Barber is absent on
// purpose — the edit form does not offer a barber change — and cost is
// never part of an edit because it is not recomputed.
type EditInput struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Date    string
	Time    string
}

// AppointmentService handles booking, listing, editing and deleting
// appointments.
type AppointmentService struct {
	repo   repository.AppointmentRepository
	logger *slog.Logger
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(repo repository.AppointmentRepository, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

// Book validates the input, checks slot availability, assigns the cost and
// persists the appointment.
//
// The availability check is an exact (barber, date, time) lookup followed by
// a separate insert — there is no atomicity between the two, so two
// concurrent bookings for the same slot can both pass the check. That race
// is a documented property of the system, not something this method guards
// against.
//
// An unrecognised service name is not rejected: it books with cost 0.
func (s *AppointmentService) Book(ctx context.Context, in BookingInput) (*model.Appointment, error) {
	if err := requireFields(map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"barber":  in.Barber,
		"service": in.Service,
		"date":    in.Date,
		"time":    in.Time,
	}); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlot(ctx, in.Barber, in.Date, in.Time)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking slot availability: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf(
			"Slot already taken for %s at %s on %s. Please choose another slot",
			in.Barber, in.Time, in.Date,
		))
	}

	appt := &model.Appointment{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Barber:  in.Barber,
		Date:    in.Date,
		Time:    in.Time,
		Cost:    model.ServiceCost(in.Service),
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		s.logger.Error("failed to book appointment",
			slog.String("barber", in.Barber),
			slog.String("date", in.Date),
			slog.String("time", in.Time),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("booking appointment: %w", err)
	}

	s.logger.Info("appointment booked",
		slog.String("id", appt.IDHex()),
		slog.String("barber", appt.Barber),
		slog.String("date", appt.Date),
		slog.String("time", appt.Time),
		slog.Int("cost", appt.Cost),
	)

	return appt, nil
}

// List returns every appointment in insertion order.
func (s *AppointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	appts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list appointments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, nil
}

// Get retrieves one appointment by id. Returns apperror.ErrNotFound if it
// doesn't exist.
func (s *AppointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "appointment id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Update overwrites the editable fields of an existing appointment.
//
// Deliberately preserved store behaviour: the slot conflict check that
// guards Book is NOT reapplied here, so an edit can move an appointment
// onto an occupied (barber, date, time) triple; and cost is NOT recomputed
// even when the service changes.
func (s *AppointmentService) Update(ctx context.Context, id string, in EditInput) (*model.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, apperror.NotFound("appointment", id)
	}

	appt := &model.Appointment{
		ID:      oid,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Date:    in.Date,
		Time:    in.Time,
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to update appointment",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("appointment updated", slog.String("id", id))
	return appt, nil
}

// Delete removes an appointment by id. Deleting an id that doesn't exist is
// a silent no-op.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete appointment",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting appointment: %w", err)
	}

	s.logger.Info("appointment deleted", slog.String("id", id))
	return nil
}

// requireFields rejects the first empty form field it finds. Iteration
// order over a map is random, so the reported field is arbitrary when
// several are missing — any absent field aborts the request either way.
func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return apperror.ValidationFailed(name, name+" is required")
		}
	}
	return nil
}
