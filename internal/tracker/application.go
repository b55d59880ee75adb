package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Application is one tracked job opportunity. Active and InInterviewProcess
// are never stored; they are derived from Status on every call.
type Application struct {
	ID          int64      `json:"id"`
	CompanyName string     `json:"companyName"`
	JobTitle    string     `json:"jobTitle"`
	Status      Status     `json:"status"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Location    string     `json:"location,omitempty"`
	JobURL      string     `json:"jobUrl,omitempty"`
	SalaryMin   *int       `json:"salaryMin,omitempty"`
	SalaryMax   *int       `json:"salaryMax,omitempty"`
	AppliedDate *time.Time `json:"appliedDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Active reports whether the application is still in play.
func (a Application) Active() bool { return a.Status.IsActive() }

// InInterviewProcess reports whether the application is in one of the
// interview stages.
func (a Application) InInterviewProcess() bool { return a.Status.IsInInterviewProcess() }

// MarshalJSON adds the derived flags as read-only fields.
func (a Application) MarshalJSON() ([]byte, error) {
	type plain Application
	return json.Marshal(struct {
		plain
		Active             bool `json:"active"`
		InInterviewProcess bool `json:"inInterviewProcess"`
	}{plain(a), a.Active(), a.InInterviewProcess()})
}

// ApplicationRequest is the untrusted create/update shape.
type ApplicationRequest struct {
	CompanyName string     `json:"companyName" validate:"required,max=255"`
	JobTitle    string     `json:"jobTitle" validate:"required,max=255"`
	Status      string     `json:"status" validate:"required"`
	Description string     `json:"description,omitempty" validate:"max=2000"`
	Notes       string     `json:"notes,omitempty" validate:"max=1000"`
	Location    string     `json:"location,omitempty" validate:"max=255"`
	JobURL      string     `json:"jobUrl,omitempty" validate:"omitempty,url"`
	SalaryMin   *int       `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax   *int       `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	AppliedDate *time.Time `json:"appliedDate,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so errors match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewApplication validates req and returns the record it describes. ID and
// timestamps are left zero for the repository to fill in.
func NewApplication(req ApplicationRequest) (*Application, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Location = strings.TrimSpace(req.Location)
	req.JobURL = strings.TrimSpace(req.JobURL)

	if err := validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, &ValidationError{
			Field: "salaryMin",
			Msg:   fmt.Sprintf("salaryMin (%d) must not be greater than salaryMax (%d)", *req.SalaryMin, *req.SalaryMax),
		}
	}

	return &Application{
		CompanyName: req.CompanyName,
		JobTitle:    req.JobTitle,
		Status:      status,
		Description: req.Description,
		Notes:       req.Notes,
		Location:    req.Location,
		JobURL:      req.JobURL,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		AppliedDate: req.AppliedDate,
	}, nil
}

// toValidationError reduces validator output to the first offending field.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error()}
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		msg = "must not be negative"
	case "url":
		msg = "must be a valid URL"
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Msg: msg}
}
