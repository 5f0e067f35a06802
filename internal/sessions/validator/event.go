package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"lashstudio/internal/wizard"
	"lashstudio/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// EventRequest is the wire form of a wizard event. Only the fields relevant
// to Type are read.
type EventRequest struct {
	Type      string `json:"type" validate:"required,oneof=select_service continue select_date select_time set_contact_field back start_new_booking shift_month retry_availability"`
	ServiceID string `json:"service_id,omitempty" validate:"required_if=Type select_service,max=64"`
	Date      string `json:"date,omitempty" validate:"required_if=Type select_date,max=10"`
	Time      string `json:"time,omitempty" validate:"required_if=Type select_time,max=16"`
	Field     string `json:"field,omitempty" validate:"required_if=Type set_contact_field,max=16"`
	Value     string `json:"value,omitempty" validate:"max=256"`
	Delta     int    `json:"delta,omitempty" validate:"min=-120,max=120"`
}

// SessionRequest opens a session, optionally with a service preselected.
type SessionRequest struct {
	ServiceID string `json:"service_id,omitempty" validate:"max=64"`
}

type EventValidator struct {
	validate *validator.Validate
}

func NewEventValidator() *EventValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &EventValidator{validate: v}
}

func (v *EventValidator) ValidateSession(req *SessionRequest) error {
	return v.check(req)
}

// ToEvent validates req and converts it into a wizard event. Guard checks
// (is the date selectable, is the slot offered) are left to the machine.
func (v *EventValidator) ToEvent(req *EventRequest) (wizard.Event, error) {
	if err := v.check(req); err != nil {
		return nil, err
	}

	switch req.Type {
	case wizard.EventSelectService:
		return wizard.SelectService{ID: req.ServiceID}, nil
	case wizard.EventContinue:
		return wizard.Continue{}, nil
	case wizard.EventSelectDate:
		d, err := model.ParseDate(req.Date)
		if err != nil {
			return nil, ValidationErrors{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}
		}
		return wizard.SelectDate{Date: d}, nil
	case wizard.EventSelectTime:
		return wizard.SelectTime{Slot: model.TimeSlot(req.Time)}, nil
	case wizard.EventSetContactField:
		return wizard.SetContactField{Field: req.Field, Value: req.Value}, nil
	case wizard.EventBack:
		return wizard.Back{}, nil
	case wizard.EventStartNewBooking:
		return wizard.StartNewBooking{ServiceID: req.ServiceID}, nil
	case wizard.EventShiftMonth:
		return wizard.ShiftMonth{Delta: req.Delta}, nil
	case wizard.EventRetryAvailability:
		return wizard.RetryAvailability{}, nil
	}
	return nil, ValidationErrors{{Field: "type", Message: fmt.Sprintf("unsupported event type %q", req.Type)}}
}

func (v *EventValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *EventValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required", "required_if":
			message = "is required"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(err.Param(), " ", ", "))
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("must be at most %s characters", err.Param())
			} else {
				message = fmt.Sprintf("must be at most %s", err.Param())
			}
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		default:
			message = fmt.Sprintf("failed %s validation", err.Tag())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
