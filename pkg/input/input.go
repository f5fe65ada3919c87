package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/duartecruz/weekend-picker/pkg/core/model"
)

// ValidationError reports a problem with the input payload, carrying the
// path of the offending field. The CLI maps it to a distinct exit status.
type ValidationError struct {
	FieldPath string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.FieldPath == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid value at '%s': %s", e.FieldPath, e.Message)
}

func newValidationError(fieldPath, format string, args ...any) *ValidationError {
	return &ValidationError{FieldPath: fieldPath, Message: fmt.Sprintf(format, args...)}
}

// rawConstraint mirrors one constraint object in the JSON payload.
// Pointer fields distinguish "absent" from "empty".
type rawConstraint struct {
	Type      string  `json:"type" validate:"required,oneof=date interval"`
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// rawPerson mirrors one person object in the JSON payload.
type rawPerson struct {
	Name            string          `json:"name" validate:"required"`
	HardConstraints []rawConstraint `json:"hard_constraints,omitempty" validate:"dive"`
	SoftConstraints []rawConstraint `json:"soft_constraints,omitempty" validate:"dive"`
}

// rawPayload mirrors the root JSON payload.
type rawPayload struct {
	MinDate string      `json:"min_date" validate:"required"`
	MaxDate string      `json:"max_date" validate:"required"`
	People  []rawPerson `json:"people" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadFromJSONFile reads, parses and validates an input payload from a JSON
// file. Every failure is reported as a *ValidationError so callers can tell
// bad input apart from internal errors.
func LoadFromJSONFile(path string) (*model.InputData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newValidationError("", "input file does not exist: %s", path)
		}
		return nil, newValidationError("", "failed to read input file '%s': %v", path, err)
	}
	return Parse(raw)
}

// Parse parses and validates a raw JSON payload into core input data.
// Unknown fields anywhere in the payload are rejected.
func Parse(raw []byte) (*model.InputData, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var payload rawPayload
	if err := decoder.Decode(&payload); err != nil {
		return nil, newValidationError("", "invalid JSON payload: %v", err)
	}

	if err := validate.Struct(&payload); err != nil {
		return nil, translateStructError(err)
	}

	minDate, err := parseISODate(payload.MinDate, "min_date")
	if err != nil {
		return nil, err
	}
	maxDate, err := parseISODate(payload.MaxDate, "max_date")
	if err != nil {
		return nil, err
	}
	if minDate.After(maxDate) {
		return nil, newValidationError("min_date", "min_date is after max_date")
	}

	people := make([]model.PersonConstraints, 0, len(payload.People))
	seenNames := map[string]struct{}{}
	for i, rawPerson := range payload.People {
		personPath := fmt.Sprintf("people[%d]", i)

		name := strings.TrimSpace(rawPerson.Name)
		if name == "" {
			return nil, newValidationError(personPath+".name", "expected a non-empty name")
		}
		if _, dup := seenNames[name]; dup {
			return nil, newValidationError(personPath+".name", "duplicate person name: '%s'", name)
		}
		seenNames[name] = struct{}{}

		hard, err := parseConstraintList(rawPerson.HardConstraints, personPath+".hard_constraints")
		if err != nil {
			return nil, err
		}
		soft, err := parseConstraintList(rawPerson.SoftConstraints, personPath+".soft_constraints")
		if err != nil {
			return nil, err
		}

		people = append(people, model.PersonConstraints{
			Name:            name,
			HardConstraints: hard,
			SoftConstraints: soft,
		})
	}

	return &model.InputData{
		MinDate: minDate,
		MaxDate: maxDate,
		People:  people,
	}, nil
}

func parseConstraintList(raw []rawConstraint, listPath string) ([]model.DateConstraint, error) {
	constraints := make([]model.DateConstraint, 0, len(raw))
	for i, rawConstraint := range raw {
		constraintPath := fmt.Sprintf("%s[%d]", listPath, i)
		constraint, err := parseConstraint(rawConstraint, constraintPath)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, constraint)
	}
	return constraints, nil
}

func parseConstraint(raw rawConstraint, constraintPath string) (model.DateConstraint, error) {
	kind := model.ConstraintKind(raw.Type)
	if !kind.IsValid() {
		return model.DateConstraint{}, newValidationError(
			constraintPath+".type", "expected 'date' or 'interval', got '%s'", raw.Type)
	}

	if kind == model.ConstraintDate {
		if raw.Date == nil {
			return model.DateConstraint{}, newValidationError(
				constraintPath+".date", "missing date for date constraint")
		}
		date, err := parseISODate(*raw.Date, constraintPath+".date")
		if err != nil {
			return model.DateConstraint{}, err
		}
		return model.DateConstraint{Kind: model.ConstraintDate, Date: date}, nil
	}

	if raw.StartDate == nil || raw.EndDate == nil {
		return model.DateConstraint{}, newValidationError(
			constraintPath, "missing start_date/end_date for interval constraint")
	}
	start, err := parseISODate(*raw.StartDate, constraintPath+".start_date")
	if err != nil {
		return model.DateConstraint{}, err
	}
	end, err := parseISODate(*raw.EndDate, constraintPath+".end_date")
	if err != nil {
		return model.DateConstraint{}, err
	}
	if start.After(end) {
		return model.DateConstraint{}, newValidationError(
			constraintPath, "start_date is after end_date")
	}
	return model.DateConstraint{Kind: model.ConstraintInterval, Start: start, End: end}, nil
}

func parseISODate(value, fieldPath string) (time.Time, error) {
	parsed, err := time.Parse(model.ISODate, value)
	if err != nil {
		return time.Time{}, newValidationError(fieldPath, "invalid date '%s', expected YYYY-MM-DD", value)
	}
	return model.Midnight(parsed), nil
}

// translateStructError maps the first validator tag failure to a
// ValidationError with a JSON-style field path.
func translateStructError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return newValidationError("", "invalid payload: %v", err)
	}

	first := validationErrors[0]
	fieldPath := jsonFieldPath(first.Namespace())
	switch first.Tag() {
	case "required":
		return newValidationError(fieldPath, "field is required")
	case "min":
		return newValidationError(fieldPath, "expected at least %s entries", first.Param())
	case "oneof":
		return newValidationError(fieldPath, "expected one of: %s", first.Param())
	default:
		return newValidationError(fieldPath, "failed '%s' validation", first.Tag())
	}
}

// jsonFieldPath rewrites a validator namespace like
// "rawPayload.People[0].HardConstraints[1].Type" into the payload's JSON
// field names.
func jsonFieldPath(namespace string) string {
	replacer := strings.NewReplacer(
		"rawPayload.", "",
		"MinDate", "min_date",
		"MaxDate", "max_date",
		"People", "people",
		"HardConstraints", "hard_constraints",
		"SoftConstraints", "soft_constraints",
		"StartDate", "start_date",
		"EndDate", "end_date",
		"Name", "name",
		"Type", "type",
		"Date", "date",
	)
	return replacer.Replace(namespace)
}
