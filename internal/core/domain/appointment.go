package domain

import "errors"

// AppointmentStatus is the lifecycle state of a booking.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// validTransitions mirrors the backend's state machine; the console uses it
// only to decide which action buttons a row gets.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCompleted, StatusCancelled},
}

var ErrSubmitInFlight = errors.New("appointment submission already in progress")

// CanTransitionTo reports whether moving from s to next is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is the booking record as the backend exposes it.
type Appointment struct {
	ID        int64             `json:"id,omitempty"`
	ClientID  int64             `json:"clientId"`
	MasterID  int64             `json:"masterId"`
	ServiceID int64             `json:"serviceId"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
}

// AppointmentDraft is the payload for a create request. It lives only for the
// duration of one submit attempt and is never stored by the console.
type AppointmentDraft struct {
	ClientID  int64             `json:"clientId"`
	MasterID  int64             `json:"masterId"`
	ServiceID int64             `json:"serviceId"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
}
