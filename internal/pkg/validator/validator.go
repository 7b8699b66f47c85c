// Package validator validates raw trade application submissions against
// the intake schema. It is pure: no storage, no network.
package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Intake field bounds
const (
	MinDescriptionLen = 20
	MaxDescriptionLen = 1000
	MinNameLen        = 2
	MaxNameLen        = 100
	MaxAdditionalLen  = 1000
	MinEstimatedValue = 500
	MaxEstimatedValue = 100000
)

// ProjectTypes is the closed set of accepted project types.
var ProjectTypes = []string{"website", "web_app", "ecommerce", "branding", "automation", "other"}

// Timelines is the closed set of accepted timelines.
var Timelines = []string{"asap", "one_month", "three_months", "flexible"}

// TradeTypes is the closed set of accepted trade types.
var TradeTypes = []string{"goods", "services", "goods_and_services", "other"}

// IntakeForm is the raw, untrusted submission payload.
type IntakeForm struct {
	ProjectType        string `json:"project_type"`
	ProjectDescription string `json:"project_description"`
	Timeline           string `json:"timeline"`
	TradeType          string `json:"trade_type"`
	TradeDescription   string `json:"trade_description"`
	EstimatedValue     int    `json:"estimated_value"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Website            string `json:"website"`
	AdditionalInfo     string `json:"additional_info"`

	// Agreement checkboxes; each must be literally true.
	AgreeTerms     bool `json:"agree_terms"`
	AgreeGoodFaith bool `json:"agree_good_faith"`
	AgreeAccuracy  bool `json:"agree_accuracy"`
	AgreeContact   bool `json:"agree_contact"`
}

// Intake is a normalized, fully validated submission.
type Intake struct {
	ProjectType        string
	ProjectDescription string
	Timeline           string
	TradeType          string
	TradeDescription   string
	EstimatedValue     int
	Name               string
	Email              string
	Website            *string
	AdditionalInfo     string
}

// Errors maps field names to their validation messages.
type Errors map[string][]string

func (e Errors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e))
}

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Validate checks the form against the intake schema and returns either
// a normalized Intake or a field-level error map.
func Validate(form *IntakeForm) (*Intake, Errors) {
	errs := Errors{}

	projectType := strings.TrimSpace(form.ProjectType)
	if !contains(ProjectTypes, projectType) {
		errs.add("project_type", "must be one of: "+strings.Join(ProjectTypes, ", "))
	}

	projectDescription := strings.TrimSpace(form.ProjectDescription)
	validateLength(errs, "project_description", projectDescription, MinDescriptionLen, MaxDescriptionLen)

	timeline := strings.TrimSpace(form.Timeline)
	if !contains(Timelines, timeline) {
		errs.add("timeline", "must be one of: "+strings.Join(Timelines, ", "))
	}

	tradeType := strings.TrimSpace(form.TradeType)
	if !contains(TradeTypes, tradeType) {
		errs.add("trade_type", "must be one of: "+strings.Join(TradeTypes, ", "))
	}

	tradeDescription := strings.TrimSpace(form.TradeDescription)
	validateLength(errs, "trade_description", tradeDescription, MinDescriptionLen, MaxDescriptionLen)

	if form.EstimatedValue < MinEstimatedValue || form.EstimatedValue > MaxEstimatedValue {
		errs.add("estimated_value", fmt.Sprintf("must be between %d and %d", MinEstimatedValue, MaxEstimatedValue))
	}

	name := strings.TrimSpace(form.Name)
	validateLength(errs, "name", name, MinNameLen, MaxNameLen)

	email := strings.ToLower(strings.TrimSpace(form.Email))
	if email == "" {
		errs.add("email", "is required")
	} else if parsed, err := mail.ParseAddress(email); err != nil || parsed.Address != email {
		errs.add("email", "must be a valid email address")
	}

	var website *string
	if trimmed := strings.TrimSpace(form.Website); trimmed != "" {
		parsed, err := url.Parse(trimmed)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			errs.add("website", "must be a valid http(s) URL")
		} else {
			website = &trimmed
		}
	}

	additionalInfo := strings.TrimSpace(form.AdditionalInfo)
	if utf8.RuneCountInString(additionalInfo) > MaxAdditionalLen {
		errs.add("additional_info", fmt.Sprintf("must be at most %d characters", MaxAdditionalLen))
	}

	checkAgreement(errs, "agree_terms", form.AgreeTerms)
	checkAgreement(errs, "agree_good_faith", form.AgreeGoodFaith)
	checkAgreement(errs, "agree_accuracy", form.AgreeAccuracy)
	checkAgreement(errs, "agree_contact", form.AgreeContact)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Intake{
		ProjectType:        projectType,
		ProjectDescription: projectDescription,
		Timeline:           timeline,
		TradeType:          tradeType,
		TradeDescription:   tradeDescription,
		EstimatedValue:     form.EstimatedValue,
		Name:               name,
		Email:              email,
		Website:            website,
		AdditionalInfo:     additionalInfo,
	}, nil
}

// validateLength bounds the field in characters, not bytes, so
// non-Latin input is measured the way the form presents it.
func validateLength(errs Errors, field, value string, min, max int) {
	length := utf8.RuneCountInString(value)
	if length < min {
		errs.add(field, fmt.Sprintf("must be at least %d characters", min))
	} else if length > max {
		errs.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func checkAgreement(errs Errors, field string, agreed bool) {
	if !agreed {
		errs.add(field, "must be accepted")
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
