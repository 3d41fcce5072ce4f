package domain

import (
	"fmt"
	"time"
)

// DayOverlay holds the operator-editable metadata for one venue-local
// calendar day. Nil means unset; all instants are absolute.
type DayOverlay struct {
	Breakfast      *time.Time `json:"breakfast,omitempty"`
	Lunch          *time.Time `json:"lunch,omitempty"`
	Dinner         *time.Time `json:"dinner,omitempty"`
	HotelDeparture *time.Time `json:"hotel_departure,omitempty"`
}

// IsEmpty reports whether every field is unset.
func (d DayOverlay) IsEmpty() bool {
	return d.Breakfast == nil && d.Lunch == nil && d.Dinner == nil && d.HotelDeparture == nil
}

// Clone returns a deep copy of the day overlay.
func (d DayOverlay) Clone() DayOverlay {
	return DayOverlay{
		Breakfast:      cloneTime(d.Breakfast),
		Lunch:          cloneTime(d.Lunch),
		Dinner:         cloneTime(d.Dinner),
		HotelDeparture: cloneTime(d.HotelDeparture),
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ConfigurationOverlay is the mutable per-date overlay on top of the
// immutable schedule. Days is keyed by venue-local date (DateKeyLayout).
type ConfigurationOverlay struct {
	Days           map[string]DayOverlay `json:"days"`
	Version        int64                 `json:"version"`
	LastModifiedBy string                `json:"last_modified_by,omitempty"`
	LastModifiedAt time.Time             `json:"last_modified_at,omitzero"`
}

// EmptyOverlay returns the documented first-run default: no days, version 0.
func EmptyOverlay() ConfigurationOverlay {
	return ConfigurationOverlay{Days: map[string]DayOverlay{}}
}

// Day returns the overlay for the given date key, all-unset if absent.
func (o *ConfigurationOverlay) Day(date string) DayOverlay {
	return o.Days[date]
}

// Clone returns a deep copy safe for concurrent readers.
func (o *ConfigurationOverlay) Clone() ConfigurationOverlay {
	out := *o
	out.Days = make(map[string]DayOverlay, len(o.Days))
	for k, v := range o.Days {
		out.Days[k] = v.Clone()
	}
	return out
}

// FieldPatch describes one edit to an overlay field. The zero value leaves
// the field unchanged; Set assigns Value; Clear resets the field to unset.
// Set and Clear are mutually exclusive.
type FieldPatch struct {
	Set   bool      `json:"set,omitempty"`
	Clear bool      `json:"clear,omitempty"`
	Value time.Time `json:"value,omitzero"`
}

// SetTo builds a patch assigning t.
func SetTo(t time.Time) FieldPatch { return FieldPatch{Set: true, Value: t} }

// ClearField builds a patch resetting the field to unset.
func ClearField() FieldPatch { return FieldPatch{Clear: true} }

func (p FieldPatch) apply(cur *time.Time) *time.Time {
	switch {
	case p.Set:
		v := p.Value
		return &v
	case p.Clear:
		return nil
	default:
		return cur
	}
}

// DayPatch carries the field edits for one date.
type DayPatch struct {
	Breakfast      FieldPatch `json:"breakfast,omitempty"`
	Lunch          FieldPatch `json:"lunch,omitempty"`
	Dinner         FieldPatch `json:"dinner,omitempty"`
	HotelDeparture FieldPatch `json:"hotel_departure,omitempty"`
}

// OverlayPatch is a partial edit across one or more dates. Dates and fields
// omitted from the patch are left unchanged.
type OverlayPatch struct {
	Days map[string]DayPatch `json:"days"`
}

// Validate rejects malformed date keys and conflicting set+clear edits.
func (p OverlayPatch) Validate() error {
	if len(p.Days) == 0 {
		return fmt.Errorf("patch is empty")
	}
	for date, dp := range p.Days {
		if _, err := time.Parse(DateKeyLayout, date); err != nil {
			return fmt.Errorf("invalid date key %q: %w", date, err)
		}
		for name, fp := range map[string]FieldPatch{
			"breakfast":       dp.Breakfast,
			"lunch":           dp.Lunch,
			"dinner":          dp.Dinner,
			"hotel_departure": dp.HotelDeparture,
		} {
			if fp.Set && fp.Clear {
				return fmt.Errorf("%s %s: set and clear are mutually exclusive", date, name)
			}
		}
	}
	return nil
}

// Apply merges the patch into the overlay in place, field by field.
// Version bookkeeping belongs to the store, not here.
func (p OverlayPatch) Apply(o *ConfigurationOverlay) {
	if o.Days == nil {
		o.Days = map[string]DayOverlay{}
	}
	for date, dp := range p.Days {
		day := o.Days[date]
		day.Breakfast = dp.Breakfast.apply(day.Breakfast)
		day.Lunch = dp.Lunch.apply(day.Lunch)
		day.Dinner = dp.Dinner.apply(day.Dinner)
		day.HotelDeparture = dp.HotelDeparture.apply(day.HotelDeparture)
		o.Days[date] = day
	}
}

// DefaultDayOverlay returns the documented baseline for a venue-local date:
// weekday breakfast 07:00, lunch 12:30, dinner 19:00, hotel departure 08:30;
// later meals on Saturday and Sunday and staggered race-day departures.
func DefaultDayOverlay(date string, venue *time.Location) (DayOverlay, error) {
	day, err := time.ParseInLocation(DateKeyLayout, date, venue)
	if err != nil {
		return DayOverlay{}, fmt.Errorf("parsing date key %q: %w", date, err)
	}

	at := func(hour, min int) *time.Time {
		t := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, venue).UTC()
		return &t
	}

	switch day.Weekday() {
	case time.Saturday:
		return DayOverlay{Breakfast: at(8, 0), Lunch: at(13, 0), Dinner: at(19, 30), HotelDeparture: at(10, 0)}, nil
	case time.Sunday:
		return DayOverlay{Breakfast: at(8, 0), Lunch: at(13, 0), Dinner: at(19, 30), HotelDeparture: at(11, 0)}, nil
	case time.Friday:
		return DayOverlay{Breakfast: at(7, 0), Lunch: at(12, 30), Dinner: at(19, 0), HotelDeparture: at(9, 0)}, nil
	default:
		return DayOverlay{Breakfast: at(7, 0), Lunch: at(12, 30), Dinner: at(19, 0), HotelDeparture: at(8, 30)}, nil
	}
}
