package registration

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrSubmitCancelled is returned when the context ends before the simulated
// round trip completes.
var ErrSubmitCancelled = errors.New("submission cancelled")

// Receipt acknowledges an accepted record. The password itself is never
// kept; only its bcrypt hash.
type Receipt struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

// Submitter accepts a completed record.
type Submitter interface {
	Submit(ctx context.Context, r Record) (Receipt, error)
}

// SimulatedSubmitter stands in for a registration backend. It re-validates
// the record, waits Delay and hashes the password. Nothing leaves the
// process.
type SimulatedSubmitter struct {
	Delay   time.Duration
	Cost    int // bcrypt cost; zero means bcrypt.DefaultCost
	Catalog *Catalog
	Now     func() time.Time
	Logger  zerolog.Logger

	structsOnce sync.Once
	structs     *validator.Validate
}

// NewSimulatedSubmitter returns a submitter using the embedded catalog.
func NewSimulatedSubmitter(delay time.Duration, logger zerolog.Logger) *SimulatedSubmitter {
	return &SimulatedSubmitter{
		Delay:   delay,
		Catalog: DefaultCatalog(),
		Now:     time.Now,
		Logger:  logger,
	}
}

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submit validates r and, after the configured delay, returns a receipt.
// Validation failures are criterio.FieldErrors.
func (s *SimulatedSubmitter) Submit(ctx context.Context, r Record) (Receipt, error) {
	r = Sanitize(r)

	if err := s.check(r); err != nil {
		s.Logger.Debug().Ctx(ctx).Err(err).Msg("record rejected")
		return Receipt{}, err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("%w: %w", ErrSubmitCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(r.Account.Password), cost)
	if err != nil {
		return Receipt{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	receipt := Receipt{
		ID:           uuid.New(),
		Username:     r.Account.Username,
		Email:        r.Email,
		CreatedAt:    now().UTC(),
		PasswordHash: string(hash),
	}

	s.Logger.Info().Ctx(ctx).
		Str("receipt_id", receipt.ID.String()).
		Str("username", receipt.Username).
		Msg("registration accepted")

	return receipt, nil
}

func (s *SimulatedSubmitter) check(r Record) error {
	if err := Check(r, s.Catalog); err != nil {
		return err
	}

	s.structsOnce.Do(func() { s.structs = newStructValidator() })
	return structErrors(s.structs.Struct(r))
}

// structErrors converts validator errors to criterio field errors keyed by
// the JSON path, e.g. "account.confirm_password".
func structErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var errs criterio.FieldErrorsBuilder
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		errs = errs.Append(path, fmt.Errorf("failed %q check", fe.Tag()))
	}
	return errs.ToError()
}
