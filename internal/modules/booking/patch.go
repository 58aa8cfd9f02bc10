// README: Pointer-field patch with key-wise merge for nested schedule/passenger objects.
package booking

import "transferdesk/internal/types"

// Patch is a partial draft update. Nil fields are untouched; nested patches
// merge key-wise, so a patch touching only Schedule.Date never erases
// Schedule.Time. A category switch is a single patch — Store.Apply clears
// the dependent fields of the old category in the same commit.
type Patch struct {
	Service  *ServiceCategory `json:"service,omitempty"`
	Transfer *TransferType    `json:"transfer,omitempty"`

	Pickup  *Location `json:"pickup,omitempty"`
	Dropoff *Location `json:"dropoff,omitempty"`

	Schedule    *SchedulePatch `json:"schedule,omitempty"`
	HourlyHours *int           `json:"hourly_hours,omitempty"`

	Passengers *PassengersPatch `json:"passengers,omitempty"`

	// VehicleID selects a catalog vehicle; an empty string clears the selection.
	VehicleID *types.ID `json:"vehicle_id,omitempty"`

	Contact *ContactPatch `json:"contact,omitempty"`
}

type SchedulePatch struct {
	Date       *string `json:"date,omitempty"`
	Time       *string `json:"time,omitempty"`
	ReturnDate *string `json:"return_date,omitempty"`
	ReturnTime *string `json:"return_time,omitempty"`
}

type PassengersPatch struct {
	Count      *int `json:"count,omitempty"`
	Luggage    *int `json:"luggage,omitempty"`
	ChildSeats *int `json:"child_seats,omitempty"`
}

type ContactPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// merge folds the patch into the draft field by field. Vehicle selection is
// handled by the store, which needs the catalog.
func (p Patch) merge(d *Draft) {
	if p.Service != nil {
		d.Service = *p.Service
	}
	if p.Transfer != nil {
		d.Transfer = *p.Transfer
	}
	if p.Pickup != nil {
		d.Pickup = *p.Pickup
	}
	if p.Dropoff != nil {
		loc := *p.Dropoff
		d.Dropoff = &loc
	}
	if p.Schedule != nil {
		if p.Schedule.Date != nil {
			d.Schedule.Date = *p.Schedule.Date
		}
		if p.Schedule.Time != nil {
			d.Schedule.Time = *p.Schedule.Time
		}
		if p.Schedule.ReturnDate != nil {
			d.Schedule.ReturnDate = *p.Schedule.ReturnDate
		}
		if p.Schedule.ReturnTime != nil {
			d.Schedule.ReturnTime = *p.Schedule.ReturnTime
		}
	}
	if p.HourlyHours != nil {
		d.HourlyHours = *p.HourlyHours
	}
	if p.Passengers != nil {
		if p.Passengers.Count != nil {
			d.Passengers.Count = *p.Passengers.Count
		}
		if p.Passengers.Luggage != nil {
			d.Passengers.Luggage = *p.Passengers.Luggage
		}
		if p.Passengers.ChildSeats != nil {
			d.Passengers.ChildSeats = *p.Passengers.ChildSeats
		}
	}
	if p.Contact != nil {
		if p.Contact.FirstName != nil {
			d.Contact.FirstName = *p.Contact.FirstName
		}
		if p.Contact.LastName != nil {
			d.Contact.LastName = *p.Contact.LastName
		}
		if p.Contact.Email != nil {
			d.Contact.Email = *p.Contact.Email
		}
		if p.Contact.Phone != nil {
			d.Contact.Phone = *p.Contact.Phone
		}
	}
}
