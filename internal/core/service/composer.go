package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/parik/salon-console/internal/api/metrics"
	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
	"github.com/parik/salon-console/pkg/markup"
)

// ComposerService builds the appointment-booking form from three backend
// collections and submits the resulting draft. Each Prepare/Submit call owns
// its own state; nothing survives an invocation.
type ComposerService struct {
	directory ports.Directory
	scheduler ports.Scheduler
	guard     ports.SubmitGuard
	logger    zerolog.Logger

	currencyUnit string
	defaultTime  string
	now          func() time.Time
}

// ComposerOptions tune display-level defaults of the form.
type ComposerOptions struct {
	// CurrencyUnit is appended to service prices in option labels.
	CurrencyUnit string
	// DefaultTime pre-fills the time input, HH:MM.
	DefaultTime string
}

func NewComposerService(directory ports.Directory, scheduler ports.Scheduler, guard ports.SubmitGuard, opts ComposerOptions, logger zerolog.Logger) *ComposerService {
	if opts.CurrencyUnit == "" {
		opts.CurrencyUnit = "₽"
	}
	if opts.DefaultTime == "" {
		opts.DefaultTime = "10:00"
	}
	return &ComposerService{
		directory:    directory,
		scheduler:    scheduler,
		guard:        guard,
		logger:       logger,
		currencyUnit: opts.CurrencyUnit,
		defaultTime:  opts.DefaultTime,
		now:          time.Now,
	}
}

// Prepare issues the three reference reads concurrently and assembles the
// booking form. All reads must succeed; every failed read is reported in the
// aggregated error and no partial form is returned.
func (s *ComposerService) Prepare(ctx context.Context, session *domain.Session) (*ports.BookingForm, error) {
	var (
		services []domain.Service
		masters  []domain.Master
		users    []domain.User
	)
	errs := make([]error, 3)

	// The group context cancels the remaining fetches once one branch fails;
	// each branch keeps its own error slot so the aggregate names every read
	// that failed, not just the first.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services, errs[0] = s.directory.ListServices(gctx, ports.ListParams{})
		return errs[0]
	})
	g.Go(func() error {
		masters, errs[1] = s.directory.ListMasters(gctx, ports.ListParams{})
		return errs[1]
	})
	g.Go(func() error {
		users, errs[2] = s.directory.ListUsers(gctx)
		return errs[2]
	})
	if err := g.Wait(); err != nil {
		prepErr := aggregateFetchFailures(errs)
		s.logger.Error().Err(prepErr).Msg("booking form preparation failed")
		metrics.ComposerPreparesTotal.WithLabelValues("error").Inc()
		return nil, prepErr
	}

	form := &ports.BookingForm{
		Token:    uuid.NewString(),
		Masters:  make([]ports.FormOption, 0, len(masters)),
		Services: make([]ports.FormOption, 0, len(services)),
		Date:     s.now().Format("2006-01-02"),
		Time:     s.defaultTime,
	}

	for _, m := range masters {
		form.Masters = append(form.Masters, ports.FormOption{
			Value: m.ID,
			Label: markup.Escape(m.Name),
		})
	}
	for _, sv := range services {
		form.Services = append(form.Services, ports.FormOption{
			Value: sv.ID,
			Label: fmt.Sprintf("%s (%s %s)", markup.Escape(sv.Name), formatPrice(sv.Price), s.currencyUnit),
		})
	}

	if id, ok := session.ClientID(); ok {
		form.ClientBound = true
		form.BoundClientID = id
	} else {
		for _, u := range users {
			if !u.IsClient() {
				continue
			}
			form.Clients = append(form.Clients, ports.FormOption{
				Value: u.ID,
				Label: fmt.Sprintf("%s (%s)", markup.Escape(u.Username), markup.Escape(u.Email)),
			})
		}
	}

	s.logger.Debug().
		Str("form_token", form.Token).
		Bool("client_bound", form.ClientBound).
		Int("services", len(form.Services)).
		Int("masters", len(form.Masters)).
		Int("clients", len(form.Clients)).
		Msg("booking form prepared")
	metrics.ComposerPreparesTotal.WithLabelValues("ok").Inc()

	return form, nil
}

// Submit parses the posted values into a draft and issues exactly one create
// request. The ambient session wins over any posted clientId.
func (s *ComposerService) Submit(ctx context.Context, session *domain.Session, values ports.FormValues) error {
	clientID, bound := session.ClientID()
	if !bound {
		var err error
		clientID, err = parseID("clientId", values.ClientID)
		if err != nil {
			return err
		}
	}
	masterID, err := parseID("masterId", values.MasterID)
	if err != nil {
		return err
	}
	serviceID, err := parseID("serviceId", values.ServiceID)
	if err != nil {
		return err
	}

	draft := domain.AppointmentDraft{
		ClientID:  clientID,
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      values.Date,
		Time:      normalizeTime(values.Time),
		Status:    domain.StatusScheduled,
	}

	if s.guard != nil && values.Token != "" {
		ok, err := s.guard.Acquire(ctx, values.Token)
		if err != nil {
			s.logger.Warn().Err(err).Msg("submit guard unavailable, proceeding unguarded")
		} else if !ok {
			metrics.AppointmentSubmitsTotal.WithLabelValues("duplicate").Inc()
			return domain.ErrSubmitInFlight
		}
	}

	if err := s.scheduler.CreateAppointment(ctx, draft); err != nil {
		// A failed submit frees the token so the user can retry from the
		// still-open form.
		if s.guard != nil && values.Token != "" {
			s.guard.Release(ctx, values.Token)
		}
		metrics.AppointmentSubmitsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).
			Int64("master_id", masterID).
			Int64("service_id", serviceID).
			Msg("appointment creation rejected")
		return submitError(err)
	}

	metrics.AppointmentSubmitsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().
		Int64("client_id", clientID).
		Int64("master_id", masterID).
		Int64("service_id", serviceID).
		Str("date", draft.Date).
		Str("time", draft.Time).
		Msg("appointment created")
	return nil
}

func aggregateFetchFailures(errs []error) *domain.PrepareError {
	agg := &domain.PrepareError{}
	resources := []string{"services", "masters", "users"}
	for i, err := range errs {
		if err == nil || errors.Is(err, context.Canceled) {
			continue
		}
		var be *domain.BackendError
		if !errors.As(err, &be) {
			be = &domain.BackendError{Resource: resources[i], Detail: err.Error()}
		}
		agg.Failures = append(agg.Failures, be)
	}
	return agg
}

func submitError(err error) error {
	var be *domain.BackendError
	if errors.As(err, &be) {
		return &domain.SubmitError{Status: be.Status, Detail: be.Detail}
	}
	return &domain.SubmitError{Detail: err.Error()}
}

func parseID(field, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &domain.ParseError{Field: field, Value: value}
	}
	return id, nil
}

// normalizeTime appends seconds when the input carries only hours and
// minutes, which is what an HTML time input posts.
func normalizeTime(t string) string {
	if len(t) == len("15:04") {
		return t + ":00"
	}
	return t
}

// formatPrice renders whole prices without a fractional part and everything
// else with two digits, matching the backend's own labels.
func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
