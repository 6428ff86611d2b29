package domain

import "time"

// DayCaption is the per-weekday entry of the schedule file.
type DayCaption struct {
	Caption     string   `json:"caption" yaml:"caption"`
	Description string   `json:"description" yaml:"description"`
	Times       []string `json:"times,omitempty" yaml:"times,omitempty"`
}

// CaptionConfig maps account key -> weekday name ("Monday") -> entry.
type CaptionConfig map[string]map[string]DayCaption

// Caption is the resolved text for one run.
type Caption struct {
	Caption     string
	Description string
}

// Resolve picks the entry for the weekday. Missing or empty values fall back
// to def; a missing description falls back to the caption.
func (c CaptionConfig) Resolve(account string, day time.Weekday, def string) (Caption, bool) {
	entry, found := c[account][day.String()]
	caption := entry.Caption
	if caption == "" {
		caption = def
	}
	description := entry.Description
	if description == "" {
		description = caption
	}
	return Caption{Caption: caption, Description: description}, found && entry.Caption != ""
}

// Times returns the posting times configured for the weekday, if any.
func (c CaptionConfig) Times(account string, day time.Weekday) []string {
	return c[account][day.String()].Times
}
