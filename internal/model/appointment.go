package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Appointment represents one booked salon visit.
//
// Date and Time are stored exactly as submitted from the booking form
// ("2024-01-01", "10:00") — the store never interprets them, it only matches
// them when checking slot availability. Cost is derived from the service
// cost table at booking time and is NOT recomputed when an appointment is
// edited, even if the service changes.
type Appointment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Phone   string             `bson:"phone"`
	Service string             `bson:"service"`
	Barber  string             `bson:"barber"`
	Date    string             `bson:"date"`
	Time    string             `bson:"time"`
	Cost    int                `bson:"cost"`
}

// IDHex returns the appointment's id as the hex string used in routes.
func (a *Appointment) IDHex() string {
	return a.ID.Hex()
}

// Barbers is the fixed set of bookable barbers, in the order the booking
// form presents them.
var Barbers = []string{"Barber A", "Barber B", "Barber C"}

// ServiceCosts maps a service name to its cost in whole currency units.
//
// An unrecognised service name is NOT an error: ServiceCost returns 0 for
// it, matching the store's historical behaviour. Callers that want to offer
// a choice of services should range over Services, not this map.
var ServiceCosts = map[string]int{
	"long_haircut":  150,
	"short_haircut": 150,
	"beard_trim":    100,
	"hair_color":    140,
}

// Services lists the service names offered on the booking form, in display
// order (maps iterate in random order, so the form can't range over
// ServiceCosts directly).
var Services = []string{"long_haircut", "short_haircut", "beard_trim", "hair_color"}

// ServiceCost returns the cost for a service name, or 0 if the name is not
// in the table.
func ServiceCost(service string) int {
	return ServiceCosts[service]
}
