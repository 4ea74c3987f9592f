package design

import (
	"fmt"
	"strings"
)

// Request captures the preferences entered in the design form. It is built
// once per generation and never mutated afterwards.
type Request struct {
	RoomType     string   `json:"room_type"`
	Style        string   `json:"style"`
	BudgetRange  string   `json:"budget_range"`
	SizeCategory string   `json:"size_category"`
	Colors       []string `json:"color_preferences,omitempty"`
	Features     []string `json:"special_features,omitempty"`
	Requirements string   `json:"free_text_requirements,omitempty"`
}

// Normalize trims whitespace from every field in place.
func (r *Request) Normalize() {
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.Style = strings.TrimSpace(r.Style)
	r.BudgetRange = strings.TrimSpace(r.BudgetRange)
	r.SizeCategory = strings.TrimSpace(r.SizeCategory)
	r.Requirements = strings.TrimSpace(r.Requirements)
	r.Colors = trimAll(r.Colors)
	r.Features = trimAll(r.Features)
}

// Validate reports every problem with the request, not just the first one.
func (r Request) Validate() []error {
	var errs []error

	required := []struct {
		label   string
		value   string
		allowed []string
	}{
		{"room_type", r.RoomType, RoomTypes},
		{"style", r.Style, Styles},
		{"budget_range", r.BudgetRange, BudgetRanges},
		{"size_category", r.SizeCategory, SizeCategories},
	}
	for _, field := range required {
		if field.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.label))
			continue
		}
		if !contains(field.allowed, field.value) {
			errs = append(errs, fmt.Errorf("unknown %s %q", field.label, field.value))
		}
	}

	for _, color := range r.Colors {
		if !contains(ColorOptions, color) {
			errs = append(errs, fmt.Errorf("unknown color %q", color))
		}
	}
	for _, feature := range r.Features {
		if !contains(FeatureOptions, feature) {
			errs = append(errs, fmt.Errorf("unknown feature %q", feature))
		}
	}

	return errs
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
