package ports

import (
	"context"

	"github.com/parik/salon-console/internal/core/domain"
)

// FormOption is one entry of a select field. Label is already escaped for
// markup interpolation; Value is the referenced entity id.
type FormOption struct {
	Value int64
	Label string
}

// BookingForm is the fully assembled appointment form, ready to render.
// When ClientBound is true the client field is structurally absent and
// BoundClientID is submitted instead.
type BookingForm struct {
	Token         string
	ClientBound   bool
	BoundClientID int64
	Clients       []FormOption
	Masters       []FormOption
	Services      []FormOption
	Date          string
	Time          string
}

// FormValues are the raw strings posted from the rendered form.
type FormValues struct {
	Token     string
	ClientID  string
	MasterID  string
	ServiceID string
	Date      string
	Time      string
}

// Composer assembles and submits appointment-creation requests. The ambient
// session is threaded through explicitly so concurrent invocations never
// share identity state.
type Composer interface {
	// Prepare fetches the three reference collections concurrently and
	// builds the booking form. Any failed read voids the whole operation.
	Prepare(ctx context.Context, session *domain.Session) (*BookingForm, error)
	// Submit turns posted form values into a draft and issues exactly one
	// create request. Failures leave no state behind; the caller may retry.
	Submit(ctx context.Context, session *domain.Session, values FormValues) error
}

// SubmitGuard serializes submissions of a single form instance. Acquire
// reports false when another submission of the same token is in flight.
type SubmitGuard interface {
	Acquire(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string)
}
