package reservation

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"upc-cli/storage"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPastDate      = errors.New("date is before today")
	ErrUnknownOption = errors.New("option not offered")
)

var validate = validator.New()

// Dropdown identifies which picker of the form is open. At most one is.
type Dropdown int

const (
	DropdownNone Dropdown = iota
	DropdownCampus
	DropdownSpace
	DropdownDate
)

func (d Dropdown) String() string {
	switch d {
	case DropdownCampus:
		return "campus"
	case DropdownSpace:
		return "space"
	case DropdownDate:
		return "date"
	}
	return "none"
}

// Intent is a validated request to see the availability of a space.
type Intent struct {
	Category  storage.Category `json:"type" validate:"required"`
	Campus    string           `json:"campus" validate:"required"`
	SpaceType string           `json:"spaceType" validate:"required"`
	Date      time.Time        `json:"date" validate:"required"`
}

func (i Intent) DateLabel() string {
	return i.Date.Format(storage.DateLayout)
}

// ValidationError is shown to the user when a required field is missing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Form is the state of one reservation form screen.
type Form struct {
	category  storage.Category
	catalog   Catalog
	campus    string
	spaceType string
	date      time.Time
	minDate   time.Time
	active    Dropdown
}

// NewForm starts a form for category. The date defaults to the day of now,
// which is also the earliest selectable date.
func NewForm(category storage.Category, catalog Catalog, now time.Time) (*Form, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownCategory, category)
	}
	today := startOfDay(now)
	return &Form{
		category: category,
		catalog:  catalog,
		date:     today,
		minDate:  today,
	}, nil
}

func (f *Form) Category() storage.Category { return f.category }
func (f *Form) Title() string              { return Title(f.category) }
func (f *Form) Campus() string             { return f.campus }
func (f *Form) SpaceType() string          { return f.spaceType }
func (f *Form) Date() time.Time            { return f.date }
func (f *Form) MinDate() time.Time         { return f.minDate }
func (f *Form) DateLabel() string          { return f.date.Format(storage.DateLayout) }
func (f *Form) Active() Dropdown           { return f.active }

func (f *Form) CampusOptions() []string {
	return slices.Clone(f.catalog.Campuses)
}

func (f *Form) SpaceOptions() []string {
	return slices.Clone(f.catalog.SpaceOptions(f.category))
}

// Toggle opens d, closing any other picker. Toggling the open picker closes it.
func (f *Form) Toggle(d Dropdown) {
	if f.active == d {
		f.active = DropdownNone
		return
	}
	f.active = d
}

// OpenDatePicker opens the date picker and closes both dropdowns.
func (f *Form) OpenDatePicker() {
	f.active = DropdownDate
}

func (f *Form) CloseAll() {
	f.active = DropdownNone
}

func (f *Form) SelectCampus(option string) error {
	if !slices.Contains(f.catalog.Campuses, option) {
		return fmt.Errorf("%w: campus %q", ErrUnknownOption, option)
	}
	f.campus = option
	if f.active == DropdownCampus {
		f.active = DropdownNone
	}
	return nil
}

func (f *Form) SelectSpace(option string) error {
	if !slices.Contains(f.catalog.SpaceOptions(f.category), option) {
		return fmt.Errorf("%w: %s %q", ErrUnknownOption, spaceNoun(f.category), option)
	}
	f.spaceType = option
	if f.active == DropdownSpace {
		f.active = DropdownNone
	}
	return nil
}

// SetDate picks the reservation day. Days before the minimum are refused.
func (f *Form) SetDate(date time.Time) error {
	day := startOfDay(date.In(f.minDate.Location()))
	if day.Before(f.minDate) {
		return fmt.Errorf("%w: %s", ErrPastDate, day.Format(storage.DateLayout))
	}
	f.date = day
	if f.active == DropdownDate {
		f.active = DropdownNone
	}
	return nil
}

// Submit validates the form. On failure nothing changes and the returned
// *ValidationError names the first missing field.
func (f *Form) Submit() (Intent, error) {
	intent := Intent{
		Category:  f.category,
		Campus:    f.campus,
		SpaceType: f.spaceType,
		Date:      f.date,
	}
	if err := validate.Struct(intent); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Intent{}, f.validationError(fieldErrs[0].Field())
		}
		return Intent{}, err
	}
	return intent, nil
}

func (f *Form) validationError(field string) *ValidationError {
	switch field {
	case "Campus":
		return &ValidationError{Field: "campus", Message: "Por favor selecciona un campus"}
	case "SpaceType":
		return &ValidationError{Field: "spaceType", Message: fmt.Sprintf("Por favor selecciona un tipo de %s", spaceNoun(f.category))}
	case "Date":
		return &ValidationError{Field: "date", Message: "Por favor selecciona un día de reserva"}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("Por favor completa %s", field)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
