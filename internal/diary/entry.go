package diary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/faideww/fishing-journal/internal/spot"
)

// DateLayout is day/month/year.
const DateLayout = "02/01/2006"

var ErrInvalidEntry = errors.New("invalid journal entry")

type Entry struct {
	ID     string       `json:"id" validate:"required"`
	Title  string       `json:"title" validate:"required"`
	Desc   string       `json:"desc"`
	Date   string       `json:"date" validate:"required"`
	Coords *spot.Coords `json:"coords,omitempty"`
}

func ID(e Entry) string { return e.ID }

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewEntry builds an entry ready to be added: the title must not be blank,
// the id is a time-ordered UUID and the date is formatted as day/month/year.
// Title and description are stored as typed.
func NewEntry(title, desc string, date time.Time, coords *spot.Coords) (Entry, error) {
	if err := validate.Var(strings.TrimSpace(title), "required"); err != nil {
		return Entry{}, fmt.Errorf("%w: title is blank", ErrInvalidEntry)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}
	if date.IsZero() {
		date = time.Now()
	}

	e := Entry{
		ID:     id.String(),
		Title:  title,
		Desc:   desc,
		Date:   date.Format(DateLayout),
		Coords: coords,
	}
	if err := validate.Struct(e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return e, nil
}

// ParseDate accepts day/month/year; an empty string means today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be dd/mm/yyyy", ErrInvalidEntry)
	}
	if t.After(time.Now()) {
		return time.Time{}, fmt.Errorf("%w: date is in the future", ErrInvalidEntry)
	}
	return t, nil
}
