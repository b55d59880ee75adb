// Package tracker defines the job application lifecycle.
//
// Status space:
//
//	RESEARCHING  APPLIED  PHONE_SCREEN  TECHNICAL_INTERVIEW  ONSITE_INTERVIEW  OFFER
//	                      └──────────── in interview ───────────────┘
//	REJECTED  WITHDRAWN  ACCEPTED   (terminal)
//
// Statuses are labels, not a state machine: an application may move from any
// status to any other. Everything that is not terminal is active.
package tracker

import (
	"encoding/json"
	"fmt"
)

// Status values mirror the status column of job_applications.
type Status string

const (
	StatusResearching        Status = "RESEARCHING"
	StatusApplied            Status = "APPLIED"
	StatusPhoneScreen        Status = "PHONE_SCREEN"
	StatusTechnicalInterview Status = "TECHNICAL_INTERVIEW"
	StatusOnsiteInterview    Status = "ONSITE_INTERVIEW"
	StatusOffer              Status = "OFFER"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"
	StatusAccepted           Status = "ACCEPTED"
)

// Hint is a presentation tag a client can map to a colour or badge style.
type Hint string

const (
	HintDefault   Hint = "default"
	HintPrimary   Hint = "primary"
	HintSecondary Hint = "secondary"
	HintWarning   Hint = "warning"
	HintInfo      Hint = "info"
	HintSuccess   Hint = "success"
	HintError     Hint = "error"
)

type statusInfo struct {
	label     string
	hint      Hint
	terminal  bool
	interview bool
}

// statusOrder is the pipeline order used for listings and breakdowns.
var statusOrder = [...]Status{
	StatusResearching,
	StatusApplied,
	StatusPhoneScreen,
	StatusTechnicalInterview,
	StatusOnsiteInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
	StatusAccepted,
}

// statusTable is built once and never written to after init.
var statusTable = map[Status]statusInfo{
	StatusResearching:        {label: "Researching", hint: HintDefault},
	StatusApplied:            {label: "Applied", hint: HintPrimary},
	StatusPhoneScreen:        {label: "Phone Screen", hint: HintSecondary, interview: true},
	StatusTechnicalInterview: {label: "Technical Interview", hint: HintWarning, interview: true},
	StatusOnsiteInterview:    {label: "Onsite Interview", hint: HintInfo, interview: true},
	StatusOffer:              {label: "Offer", hint: HintSuccess},
	StatusRejected:           {label: "Rejected", hint: HintError, terminal: true},
	StatusWithdrawn:          {label: "Withdrawn", hint: HintDefault, terminal: true},
	StatusAccepted:           {label: "Accepted", hint: HintSuccess, terminal: true},
}

// ParseStatus converts a raw string to a Status, returning an
// *InvalidStatusError for unknown values. Matching is exact: no trimming,
// no case folding.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusTable[st]; !ok {
		return "", &InvalidStatusError{Value: s}
	}
	return st, nil
}

// Statuses returns every status in pipeline order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder[:])
	return out
}

// TerminalStatuses returns REJECTED, WITHDRAWN and ACCEPTED.
func TerminalStatuses() []Status { return filterStatuses(Status.IsTerminal) }

// InterviewStatuses returns the three interview sub-stages.
func InterviewStatuses() []Status { return filterStatuses(Status.IsInInterviewProcess) }

func filterStatuses(keep func(Status) bool) []Status {
	var out []Status
	for _, s := range statusOrder {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Valid reports whether s is one of the nine known statuses.
func (s Status) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// IsTerminal is true for REJECTED, WITHDRAWN and ACCEPTED.
func (s Status) IsTerminal() bool { return statusTable[s].terminal }

// IsActive is true for every known status that is not terminal.
func (s Status) IsActive() bool { return s.Valid() && !s.IsTerminal() }

// IsInInterviewProcess is true for PHONE_SCREEN, TECHNICAL_INTERVIEW and
// ONSITE_INTERVIEW.
func (s Status) IsInInterviewProcess() bool { return statusTable[s].interview }

// Label returns the human-readable name, or the raw value if s is unknown.
func (s Status) Label() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return string(s)
}

// Hint returns the presentation tag for s.
func (s Status) Hint() Hint {
	if info, ok := statusTable[s]; ok {
		return info.hint
	}
	return HintDefault
}

func (s Status) String() string { return string(s) }

// UnmarshalJSON rejects anything outside the enumeration.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// StatusMeta is the read-only description of a status served to clients.
type StatusMeta struct {
	Value              Status `json:"value"`
	Label              string `json:"label"`
	Hint               Hint   `json:"hint"`
	Active             bool   `json:"active"`
	InInterviewProcess bool   `json:"inInterviewProcess"`
	Terminal           bool   `json:"terminal"`
}

// StatusCatalog describes every status in pipeline order.
func StatusCatalog() []StatusMeta {
	out := make([]StatusMeta, 0, len(statusOrder))
	for _, s := range statusOrder {
		out = append(out, StatusMeta{
			Value:              s,
			Label:              s.Label(),
			Hint:               s.Hint(),
			Active:             s.IsActive(),
			InInterviewProcess: s.IsInInterviewProcess(),
			Terminal:           s.IsTerminal(),
		})
	}
	return out
}
