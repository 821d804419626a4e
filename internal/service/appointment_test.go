package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/model"
)

// fakeApptRepo is an in-memory AppointmentRepository. Its Update mirrors
// the real store's $set: barber and cost are never touched by an edit.
type fakeApptRepo struct {
	appts []*model.Appointment
}

func (f *fakeApptRepo) Create(_ context.Context, appt *model.Appointment) error {
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	stored := *appt
	f.appts = append(f.appts, &stored)
	return nil
}

func (f *fakeApptRepo) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	for _, a := range f.appts {
		if a.IDHex() == id {
			found := *a
			return &found, nil
		}
	}
	return nil, apperror.NotFound("appointment", id)
}

func (f *fakeApptRepo) List(_ context.Context) ([]model.Appointment, error) {
	out := make([]model.Appointment, 0, len(f.appts))
	for _, a := range f.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeApptRepo) FindBySlot(_ context.Context, barber, date, timeOfDay string) (*model.Appointment, error) {
	for _, a := range f.appts {
		if a.Barber == barber && a.Date == date && a.Time == timeOfDay {
			found := *a
			return &found, nil
		}
	}
	return nil, apperror.NotFound("appointment", barber+"/"+date+"/"+timeOfDay)
}

func (f *fakeApptRepo) Update(_ context.Context, appt *model.Appointment) error {
	for _, a := range f.appts {
		if a.ID == appt.ID {
			a.Name = appt.Name
			a.Email = appt.Email
			a.Phone = appt.Phone
			a.Service = appt.Service
			a.Date = appt.Date
			a.Time = appt.Time
			return nil
		}
	}
	return apperror.NotFound("appointment", appt.IDHex())
}

func (f *fakeApptRepo) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil
	}
	for i, a := range f.appts {
		if a.IDHex() == id {
			f.appts = append(f.appts[:i], f.appts[i+1:]...)
			return nil
		}
	}
	return nil
}

func validBooking() BookingInput {
	return BookingInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "0123456789",
		Barber:  "Barber A",
		Service: "hair_color",
		Date:    "2026-09-01",
		Time:    "10:00",
	}
}

func newTestAppointmentService() (*AppointmentService, *fakeApptRepo) {
	repo := &fakeApptRepo{}
	return NewAppointmentService(repo, testLogger()), repo
}

func TestBook_AssignsCostFromTable(t *testing.T) {
	svc, _ := newTestAppointmentService()

	in := validBooking()
	appt, err := svc.Book(context.Background(), in)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if appt.Cost != 140 {
		t.Errorf("Cost for hair_color = %d, want 140", appt.Cost)
	}
	if appt.ID.IsZero() {
		t.Error("Book() did not assign an id")
	}
}

func TestBook_UnknownServiceCostsZero(t *testing.T) {
	svc, repo := newTestAppointmentService()

	// "haircut" is not a recognised service name; the booking still
	// succeeds, with cost 0.
	in := validBooking()
	in.Service = "haircut"

	appt, err := svc.Book(context.Background(), in)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if appt.Cost != 0 {
		t.Errorf("Cost for unknown service = %d, want 0", appt.Cost)
	}
	if len(repo.appts) != 1 {
		t.Errorf("appointment count = %d, want 1", len(repo.appts))
	}
}

func TestBook_CostTable(t *testing.T) {
	tests := []struct {
		service string
		want    int
	}{
		{"long_haircut", 150},
		{"short_haircut", 150},
		{"beard_trim", 100},
		{"hair_color", 140},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			svc, _ := newTestAppointmentService()
			in := validBooking()
			in.Service = tt.service

			appt, err := svc.Book(context.Background(), in)
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if appt.Cost != tt.want {
				t.Errorf("Cost = %d, want %d", appt.Cost, tt.want)
			}
		})
	}
}

func TestBook_SlotTaken(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	if _, err := svc.Book(ctx, validBooking()); err != nil {
		t.Fatalf("first Book() error = %v", err)
	}

	// Same barber, date and time — different customer.
	second := validBooking()
	second.Name = "Bob"
	second.Email = "bob@example.com"

	_, err := svc.Book(ctx, second)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Book() error = %v, want ErrConflict", err)
	}
	if !strings.Contains(err.Error(), "Slot already taken for Barber A at 10:00 on 2026-09-01") {
		t.Errorf("conflict message = %q, want slot/barber/time/date spelled out", err.Error())
	}
	if len(repo.appts) != 1 {
		t.Errorf("appointment count after rejected booking = %d, want 1", len(repo.appts))
	}
}

func TestBook_DifferentBarberSameTime(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	if _, err := svc.Book(ctx, validBooking()); err != nil {
		t.Fatalf("first Book() error = %v", err)
	}

	second := validBooking()
	second.Barber = "Barber B"

	if _, err := svc.Book(ctx, second); err != nil {
		t.Fatalf("Book() with different barber error = %v", err)
	}
	if len(repo.appts) != 2 {
		t.Errorf("appointment count = %d, want 2", len(repo.appts))
	}
}

func TestBook_MissingField(t *testing.T) {
	svc, repo := newTestAppointmentService()

	in := validBooking()
	in.Phone = ""

	_, err := svc.Book(context.Background(), in)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Book() error = %v, want ErrValidation", err)
	}
	if len(repo.appts) != 0 {
		t.Errorf("appointment count = %d, want 0", len(repo.appts))
	}
}

func TestList_InsertionOrder(t *testing.T) {
	svc, _ := newTestAppointmentService()
	ctx := context.Background()

	first := validBooking()
	second := validBooking()
	second.Name = "Bob"
	second.Time = "11:00"

	if _, err := svc.Book(ctx, first); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := svc.Book(ctx, second); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	appts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("List() count = %d, want 2", len(appts))
	}
	if appts[0].Name != "Alice" || appts[1].Name != "Bob" {
		t.Errorf("List() order = [%s, %s], want [Alice, Bob]", appts[0].Name, appts[1].Name)
	}
}

func TestUpdate_DoesNotRecomputeCost(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	booked, err := svc.Book(ctx, validBooking()) // hair_color, cost 140
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	_, err = svc.Update(ctx, booked.IDHex(), EditInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "0123456789",
		Service: "beard_trim", // would cost 100 if recomputed
		Date:    "2026-09-01",
		Time:    "10:00",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored := repo.appts[0]
	if stored.Service != "beard_trim" {
		t.Errorf("Service = %q, want beard_trim", stored.Service)
	}
	if stored.Cost != 140 {
		t.Errorf("Cost after edit = %d, want the original 140", stored.Cost)
	}
}

func TestUpdate_NoSlotConflictCheck(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	first, err := svc.Book(ctx, validBooking())
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	second := validBooking()
	second.Name = "Bob"
	second.Time = "11:00"
	bookedSecond, err := svc.Book(ctx, second)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	// Move Bob onto Alice's slot. The edit path carries no availability
	// check, so this succeeds and both appointments end up at 10:00.
	_, err = svc.Update(ctx, bookedSecond.IDHex(), EditInput{
		Name:    "Bob",
		Email:   "bob@example.com",
		Phone:   "0123456789",
		Service: "hair_color",
		Date:    first.Date,
		Time:    first.Time,
	})
	if err != nil {
		t.Fatalf("Update() onto occupied slot error = %v", err)
	}

	if repo.appts[0].Time != "10:00" || repo.appts[1].Time != "10:00" {
		t.Errorf("times = [%s, %s], want both 10:00", repo.appts[0].Time, repo.appts[1].Time)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newTestAppointmentService()

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), EditInput{Name: "X"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUpdate_MalformedID(t *testing.T) {
	svc, _ := newTestAppointmentService()

	_, err := svc.Update(context.Background(), "not-an-object-id", EditInput{Name: "X"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	first, _ := svc.Book(ctx, validBooking())
	second := validBooking()
	second.Time = "11:00"
	if _, err := svc.Book(ctx, second); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if err := svc.Delete(ctx, first.IDHex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.appts) != 1 {
		t.Fatalf("appointment count = %d, want 1", len(repo.appts))
	}
	if repo.appts[0].Time != "11:00" {
		t.Errorf("remaining appointment time = %s, want 11:00", repo.appts[0].Time)
	}
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	svc, repo := newTestAppointmentService()
	ctx := context.Background()

	if _, err := svc.Book(ctx, validBooking()); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if err := svc.Delete(ctx, primitive.NewObjectID().Hex()); err != nil {
		t.Errorf("Delete() of unknown id error = %v, want nil", err)
	}
	if err := svc.Delete(ctx, "garbage-id"); err != nil {
		t.Errorf("Delete() of malformed id error = %v, want nil", err)
	}
	if len(repo.appts) != 1 {
		t.Errorf("appointment count = %d, want 1", len(repo.appts))
	}
}

func TestGet_EmptyID(t *testing.T) {
	svc, _ := newTestAppointmentService()

	_, err := svc.Get(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Get() error = %v, want ErrValidation", err)
	}
}
