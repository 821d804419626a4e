package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/model"
	"github.com/sakif/salon-booking/internal/service"
)

// AppointmentHandler manages the booking form, the listing page, and the
// edit/delete actions.
type AppointmentHandler struct {
	appts  *service.AppointmentService
	render *Renderer
	logger *slog.Logger
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(appts *service.AppointmentService, render *Renderer, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{appts: appts, render: render, logger: logger}
}

// HandleBookForm serves the booking form.
//
// HTTP: GET /book_appointment
func (h *AppointmentHandler) HandleBookForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "book_appointment", map[string]any{
		"Title":    "Book Appointment",
		"Barbers":  model.Barbers,
		"Services": model.Services,
		"Flash":    popFlash(w, r),
		"Form":     service.BookingInput{},
	})
}

// HandleBookSubmit books an appointment.
//
// On a slot conflict the form is re-rendered with an inline error notice
// and the submitted values preserved, so the user only has to pick another
// slot. On success the browser is redirected to the listing page with a
// success notice that includes the cost.
//
// HTTP: POST /book_appointment
// (form fields: name, email, phone, barber, service, date, time)
func (h *AppointmentHandler) HandleBookSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := service.BookingInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Barber:  r.PostFormValue("barber"),
		Service: r.PostFormValue("service"),
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
	}

	appt, err := h.appts.Book(r.Context(), in)
	switch {
	case err == nil:
		setFlash(w, "success", fmt.Sprintf("Appointment booked successfully! Cost: ₹%d", appt.Cost))
		http.Redirect(w, r, "/appointments", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrConflict):
		h.render.Render(w, "book_appointment", map[string]any{
			"Title":    "Book Appointment",
			"Barbers":  model.Barbers,
			"Services": model.Services,
			"Flash":    &Flash{Category: "error", Message: appErrorMessage(err)},
			"Form":     in,
		})
	case errors.Is(err, apperror.ErrValidation):
		http.Error(w, appErrorMessage(err), http.StatusBadRequest)
	default:
		h.logger.Error("booking failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleList serves the listing page with every appointment in the store,
// in insertion order.
//
// HTTP: GET /appointments
func (h *AppointmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	appts, err := h.appts.List(r.Context())
	if err != nil {
		h.logger.Error("listing failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.Render(w, "list_appointment", map[string]any{
		"Title":        "Appointments",
		"Appointments": appts,
		"Flash":        popFlash(w, r),
	})
}

// HandleEditForm serves the edit form pre-filled with the appointment's
// current values. An unknown id renders the form over an empty record
// rather than a not-found page, matching the store's historical behaviour.
//
// HTTP: GET /edit_appointment/{id}
func (h *AppointmentHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	appt, err := h.appts.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) && !errors.Is(err, apperror.ErrValidation) {
			h.logger.Error("loading appointment failed",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		appt = &model.Appointment{}
	}

	h.render.Render(w, "edit_appointment", map[string]any{
		"Title":       "Edit Appointment",
		"Appointment": appt,
		"Services":    model.Services,
		"Flash":       popFlash(w, r),
	})
}

// HandleEditSubmit overwrites an appointment's editable fields and
// redirects to the listing page. The slot conflict check is not reapplied
// and cost is not recomputed.
//
// HTTP: POST /edit_appointment/{id}
// (form fields: name, email, phone, service, date, time)
func (h *AppointmentHandler) HandleEditSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	in := service.EditInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Service: r.PostFormValue("service"),
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
	}

	if _, err := h.appts.Update(r.Context(), id, in); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("edit failed", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Appointment updated successfully!")
	http.Redirect(w, r, "/appointments", http.StatusSeeOther)
}

// HandleDelete removes an appointment and redirects to the listing page.
// Deleting an id that doesn't exist still redirects with the success
// notice — the removal is unconditional.
//
// HTTP: POST /delete_appointment/{id}
func (h *AppointmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.appts.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete failed", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Appointment deleted successfully!")
	http.Redirect(w, r, "/appointments", http.StatusSeeOther)
}
