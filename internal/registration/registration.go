// Package registration decodes the submitted registration batch JSON and
// offers a few small helpers (age-at-date, DOS-style date formatting) the
// validation engine needs when comparing a registrant against a database
// record.
package registration

import (
	"encoding/json"
	"fmt"
	"time"

	"rodeovalidate/pkg/domainerr"
)

// Batch is the top-level submitted document.
type Batch struct {
	CompletedRegistrations []Registration `json:"completed_registrations"`
}

// Registration is one contestant's full submission: their profile plus
// the events they entered.
type Registration struct {
	Contestant Contestant `json:"contestant"`
	Events     []Event    `json:"events"`
}

// Contestant is the submitted profile of a single registrant.
type Contestant struct {
	FirstName       string      `json:"first"`
	LastName        string      `json:"last"`
	PerformanceName string      `json:"performance"`
	DOB             Date        `json:"dob"`
	Gender          string      `json:"gender"`
	IsMember        bool        `json:"isMember"`
	Association     Association `json:"association"`
	SSN             string      `json:"ssn"`
	Address         Address     `json:"address"`
	NoteToDirector  string      `json:"noteToDirector"`
}

// Association carries the IGRA# the registrant claims, if any, plus their
// member association abbreviation.
type Association struct {
	IGRA       string `json:"igra"`
	MemberAssn string `json:"memberAssn"`
}

// Address is the registrant's submitted mailing and contact information.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
	Email        string `json:"email"`
	CellPhoneNo  string `json:"cellPhoneNo"`
	HomePhoneNo  string `json:"homePhoneNo"`
}

// Event is one event-round entry, with the partners the registrant listed
// for it (0-2 free-text strings, format and count validated per event).
type Event struct {
	EventID  string   `json:"eventId"`
	Round    int      `json:"round"`
	Partners []string `json:"partners"`
}

// Date is a submitted year/month/day triple, kept split rather than
// parsed eagerly since a malformed DOB is a validation finding, not a
// decode error.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Time attempts to convert d to a time.Time, returning ok=false if the
// components don't form a real calendar date.
func (d Date) Time() (t time.Time, ok bool) {
	if d.Year == 0 && d.Month == 0 && d.Day == 0 {
		return time.Time{}, false
	}
	t = time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t, t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// DOS formats d the way the legacy system stores dates: YYYYMMDD, zero
// padded, with no validity check.
func (d Date) DOS() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// AgeAt returns the registrant's age in whole years as of `at`, and false
// if the DOB does not parse to a real date.
func (d Date) AgeAt(at time.Time) (age int, ok bool) {
	dob, ok := d.Time()
	if !ok {
		return 0, false
	}
	age = at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// Decode parses a registration batch document. A malformed document is
// surfaced as a single error rejecting the whole batch, never as a
// per-registrant finding.
func Decode(data []byte) (Batch, error) {
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return Batch{}, domainerr.Wrap(err, domainerr.CodeInvalidInput, "malformed registration batch")
	}
	return batch, nil
}
