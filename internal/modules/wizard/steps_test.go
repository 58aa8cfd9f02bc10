package wizard

import (
	"testing"
	"time"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/schedule"
)

func draftRules() schedule.Rules {
	r := schedule.New(120*time.Minute, time.UTC)
	r.Now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return r
}

func completeDistanceDraft() booking.Draft {
	drop := booking.Location{Address: "Hotel Adlon", PlaceID: "p2", Category: booking.LocationHotel}
	v := catalog.Seed()[0]
	return booking.Draft{
		Service:  booking.ServiceDistance,
		Transfer: booking.TransferOneWay,
		Pickup:   booking.Location{Address: "BER Airport", PlaceID: "p1", Category: booking.LocationAirport},
		Dropoff:  &drop,
		Schedule: booking.Schedule{Date: "2026-03-02", Time: "14:00"},
		Passengers: booking.Passengers{Count: 2},
		Vehicle:  &v,
		Contact: booking.Contact{
			FirstName: "Ada", LastName: "Koch",
			Email: "ada@example.com", Phone: "+49 170 1234567",
		},
	}
}

func TestStepOrderNavigation(t *testing.T) {
	if Next(StepRideDetails) != StepVehicle || Next(StepContact) != StepSummary {
		t.Error("forward order broken")
	}
	if Next(StepSummary) != StepSummary {
		t.Error("advancing past the last step must stay put")
	}
	if Prev(StepVehicle) != StepRideDetails || Prev(StepRideDetails) != StepRideDetails {
		t.Error("backward order broken")
	}
}

func TestNormalizeUnknownStep(t *testing.T) {
	for _, raw := range []string{"", "checkout", "RIDE_DETAILS"} {
		if got := Normalize(raw); got != StepRideDetails {
			t.Errorf("Normalize(%q) = %s, want ride_details", raw, got)
		}
	}
	if got := Normalize("contact"); got != StepContact {
		t.Errorf("Normalize(contact) = %s", got)
	}
}

func TestCanAdvance(t *testing.T) {
	mutate := func(fn func(*booking.Draft)) booking.Draft {
		d := completeDistanceDraft()
		fn(&d)
		return d
	}

	tests := []struct {
		name  string
		step  Step
		draft booking.Draft
		want  bool
	}{
		{"complete ride details", StepRideDetails, completeDistanceDraft(), true},
		{"missing pickup", StepRideDetails, mutate(func(d *booking.Draft) { d.Pickup = booking.Location{} }), false},
		{"distance without dropoff", StepRideDetails, mutate(func(d *booking.Draft) { d.Dropoff = nil }), false},
		{"return without return date", StepRideDetails, mutate(func(d *booking.Draft) {
			d.Transfer = booking.TransferReturn
		}), false},
		{"return with return date", StepRideDetails, mutate(func(d *booking.Draft) {
			d.Transfer = booking.TransferReturn
			d.Schedule.ReturnDate, d.Schedule.ReturnTime = "2026-03-03", "14:00"
		}), true},
		{"hourly needs no dropoff", StepRideDetails, mutate(func(d *booking.Draft) {
			d.Service = booking.ServiceHourly
			d.Dropoff = nil
			d.HourlyHours = 3
		}), true},
		{"hourly below minimum hours", StepRideDetails, mutate(func(d *booking.Draft) {
			d.Service = booking.ServiceHourly
			d.Dropoff = nil
			d.HourlyHours = 1
		}), false},
		{"vehicle selected", StepVehicle, completeDistanceDraft(), true},
		{"no vehicle", StepVehicle, mutate(func(d *booking.Draft) { d.Vehicle = nil }), false},
		{"valid contact", StepContact, completeDistanceDraft(), true},
		{"contact missing name", StepContact, mutate(func(d *booking.Draft) { d.Contact.LastName = " " }), false},
		{"contact bad email", StepContact, mutate(func(d *booking.Draft) { d.Contact.Email = "not-an-email" }), false},
		{"contact bad phone", StepContact, mutate(func(d *booking.Draft) { d.Contact.Phone = "call me" }), false},
		{"summary is terminal", StepSummary, completeDistanceDraft(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAdvance(tt.step, tt.draft); got != tt.want {
				t.Errorf("CanAdvance(%s) = %v, want %v", tt.step, got, tt.want)
			}
		})
	}
}

func TestTryAdvanceAndBackOnStore(t *testing.T) {
	s := booking.NewStore("d1", booking.Deps{Rules: draftRules(), Catalog: catalog.NewService(nil)})

	// Fresh draft: ride details incomplete, advancement is blocked.
	if _, err := TryAdvance(s); err != ErrStepIncomplete {
		t.Fatalf("expected ErrStepIncomplete, got %v", err)
	}

	drop := booking.Location{Address: "Hotel Adlon", Category: booking.LocationHotel}
	s.Apply(booking.Patch{
		Pickup:  &booking.Location{Address: "BER Airport", Category: booking.LocationAirport},
		Dropoff: &drop,
	})
	step, err := TryAdvance(s)
	if err != nil || step != StepVehicle {
		t.Fatalf("TryAdvance = (%s, %v), want vehicle", step, err)
	}

	// Backward navigation is always allowed and keeps the data.
	if got := Back(s); got != StepRideDetails {
		t.Fatalf("Back = %s", got)
	}
	if d := s.Snapshot(); d.Dropoff == nil || d.Dropoff.Address != "Hotel Adlon" {
		t.Error("backward navigation lost entered data")
	}
}

func TestPhonePlausible(t *testing.T) {
	valid := []string{"+49 170 1234567", "030-123456", "(030) 123 456"}
	invalid := []string{"", "12345", "call me maybe", "+49 17x 123"}
	for _, p := range valid {
		if !phonePlausible(p) {
			t.Errorf("phonePlausible(%q) = false", p)
		}
	}
	for _, p := range invalid {
		if phonePlausible(p) {
			t.Errorf("phonePlausible(%q) = true", p)
		}
	}
}
