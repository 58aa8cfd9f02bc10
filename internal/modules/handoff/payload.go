// README: Handoff payload codec: current and legacy funnel shapes → draft patch.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/types"
)

// CurrentVersion is the payload shape this build emits.
const CurrentVersion = 1

var ErrMalformed = errors.New("malformed handoff payload")

// Payload is the current wire shape the public funnel hands to the wizard.
type Payload struct {
	Version      int              `json:"version"`
	ServiceType  string           `json:"serviceType"`
	TransferType string           `json:"transferType,omitempty"`
	Pickup       *PayloadLocation `json:"pickup,omitempty"`
	Dropoff      *PayloadLocation `json:"dropoff,omitempty"`
	// Civil local datetimes, "2006-01-02T15:04".
	PickupDateTime string            `json:"pickupDateTime,omitempty"`
	ReturnDateTime string            `json:"returnDateTime,omitempty"`
	Passengers     PayloadPassengers `json:"passengers"`
	HourlyDuration int               `json:"hourlyDuration,omitempty"`
}

type PayloadLocation struct {
	Address  string  `json:"address"`
	PlaceID  string  `json:"placeId,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	Category string  `json:"category,omitempty"`
}

type PayloadPassengers struct {
	Count      int `json:"count"`
	Luggage    int `json:"luggage"`
	ChildSeats int `json:"childSeats"`
}

// legacyPayload is the unversioned shape the old landing pages emitted:
// flat address strings and separate date/time fields. Its serviceType used
// "airport" for what is today a distance booking.
type legacyPayload struct {
	ServiceType string `json:"serviceType"`
	Pickup      string `json:"pickupLocation"`
	Dropoff     string `json:"dropoffLocation"`
	PickupDate  string `json:"pickupDate"`
	PickupTime  string `json:"pickupTime"`
	ReturnDate  string `json:"returnDate,omitempty"`
	ReturnTime  string `json:"returnTime,omitempty"`
	Passengers  int    `json:"passengers"`
	Luggage     int    `json:"luggage"`
	Hours       int    `json:"hours,omitempty"`
}

// Decode detects the payload shape and normalizes it into a draft patch. The
// store's own pipeline then corrects anything stale. Anything unparsable is
// an error; the caller discards the slot and starts a blank draft.
func Decode(raw []byte) (booking.Patch, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return booking.Patch{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.Version == nil {
		return decodeLegacy(raw)
	}
	if *probe.Version != CurrentVersion {
		return booking.Patch{}, fmt.Errorf("%w: unsupported version %d", ErrMalformed, *probe.Version)
	}
	return decodeCurrent(raw)
}

func decodeCurrent(raw []byte) (booking.Patch, error) {
	var pl Payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return booking.Patch{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	svc, err := normalizeService(pl.ServiceType)
	if err != nil {
		return booking.Patch{}, err
	}

	p := booking.Patch{Service: &svc}
	if pl.Pickup != nil {
		loc := pl.Pickup.location()
		p.Pickup = &loc
	}
	if svc == booking.ServiceDistance && pl.Dropoff != nil {
		loc := pl.Dropoff.location()
		p.Dropoff = &loc
	}
	if tr := normalizeTransfer(pl.TransferType); tr != "" && svc == booking.ServiceDistance {
		p.Transfer = &tr
	}

	sched := &booking.SchedulePatch{}
	if date, tm, ok := splitDateTime(pl.PickupDateTime); ok {
		sched.Date, sched.Time = &date, &tm
	}
	if date, tm, ok := splitDateTime(pl.ReturnDateTime); ok {
		sched.ReturnDate, sched.ReturnTime = &date, &tm
	}
	if sched.Date != nil || sched.ReturnDate != nil {
		p.Schedule = sched
	}

	p.Passengers = &booking.PassengersPatch{
		Count:      &pl.Passengers.Count,
		Luggage:    &pl.Passengers.Luggage,
		ChildSeats: &pl.Passengers.ChildSeats,
	}
	if svc == booking.ServiceHourly && pl.HourlyDuration > 0 {
		p.HourlyHours = &pl.HourlyDuration
	}
	return p, nil
}

func decodeLegacy(raw []byte) (booking.Patch, error) {
	var pl legacyPayload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return booking.Patch{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	svc, err := normalizeService(pl.ServiceType)
	if err != nil {
		return booking.Patch{}, err
	}

	p := booking.Patch{Service: &svc}
	if pl.Pickup != "" {
		p.Pickup = &booking.Location{Address: pl.Pickup, Category: booking.LocationAddress}
	}
	if svc == booking.ServiceDistance && pl.Dropoff != "" {
		p.Dropoff = &booking.Location{Address: pl.Dropoff, Category: booking.LocationAddress}
	}

	sched := &booking.SchedulePatch{}
	if pl.PickupDate != "" && pl.PickupTime != "" {
		sched.Date, sched.Time = &pl.PickupDate, &pl.PickupTime
	}
	if pl.ReturnDate != "" && pl.ReturnTime != "" {
		tr := booking.TransferReturn
		p.Transfer = &tr
		sched.ReturnDate, sched.ReturnTime = &pl.ReturnDate, &pl.ReturnTime
	}
	if sched.Date != nil || sched.ReturnDate != nil {
		p.Schedule = sched
	}

	p.Passengers = &booking.PassengersPatch{Count: &pl.Passengers, Luggage: &pl.Luggage}
	if svc == booking.ServiceHourly && pl.Hours > 0 {
		p.HourlyHours = &pl.Hours
	}
	return p, nil
}

// normalizeService maps historic service labels onto today's two categories.
func normalizeService(raw string) (booking.ServiceCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "distance", "transfer", "airport", "p2p", "":
		return booking.ServiceDistance, nil
	case "hourly", "chauffeur":
		return booking.ServiceHourly, nil
	}
	return "", fmt.Errorf("%w: unknown service type %q", ErrMalformed, raw)
}

func normalizeTransfer(raw string) booking.TransferType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "oneway", "one-way", "one_way":
		return booking.TransferOneWay
	case "return", "roundtrip", "round-trip":
		return booking.TransferReturn
	}
	return ""
}

func splitDateTime(s string) (date, tm string, ok bool) {
	i := strings.IndexByte(s, 'T')
	if i != 10 || len(s) < 16 {
		return "", "", false
	}
	return s[:10], s[11:16], true
}

func (l PayloadLocation) location() booking.Location {
	cat := booking.LocationCategory(strings.ToLower(l.Category))
	switch cat {
	case booking.LocationAddress, booking.LocationAirport, booking.LocationHotel, booking.LocationCruise:
	default:
		cat = booking.LocationAddress
	}
	return booking.Location{
		Address:  l.Address,
		PlaceID:  l.PlaceID,
		Coord:    types.Point{Lat: l.Lat, Lng: l.Lng},
		Category: cat,
	}
}
