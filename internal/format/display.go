package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldLabel turns a snake_case key into a title-cased label:
// "current_company" -> "Current Company".
func FieldLabel(key string) string {
	// a Caser is stateful, so one per call
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// FieldValue renders a decoded JSON value. Objects are shown as indented
// JSON rather than coerced to a primitive; arrays are joined with ", ".
func FieldValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case nil:
				parts = append(parts, "")
			case map[string]any, []any:
				parts = append(parts, indentJSON(item))
			default:
				parts = append(parts, scalar(item))
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return indentJSON(val)
	default:
		return scalar(val)
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func indentJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

// Tone names a visual severity used by the stylesheet.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	TonePrimary Tone = "primary"
	ToneInfo    Tone = "info"
	ToneAccent  Tone = "accent"
	ToneNotice  Tone = "notice"
	ToneNeutral Tone = "neutral"
)

// Meter is a rendered confidence score.
type Meter struct {
	Percent int
	Tone    Tone
}

func percent(score float64) int {
	p := int(math.Round(score * 100))
	return max(0, min(100, p))
}

// Confidence is the per-field meter on the profile page.
func Confidence(score float64) Meter {
	p := percent(score)
	switch {
	case p > 90:
		return Meter{Percent: p, Tone: ToneSuccess}
	case p > 70:
		return Meter{Percent: p, Tone: ToneWarning}
	default:
		return Meter{Percent: p, Tone: ToneDanger}
	}
}

// ConfidenceBar is the standalone bar used in summaries.
func ConfidenceBar(score float64) Meter {
	p := percent(score)
	switch {
	case p >= 80:
		return Meter{Percent: p, Tone: ToneSuccess}
	case p < 50:
		return Meter{Percent: p, Tone: ToneWarning}
	default:
		return Meter{Percent: p, Tone: TonePrimary}
	}
}

var statusTones = map[string]Tone{
	"completed":           ToneSuccess,
	"failed":              ToneDanger,
	"processing":          ToneWarning,
	"pending_documents":   ToneNotice,
	"document_requested":  ToneInfo,
	"partially_completed": ToneAccent,
}

// StatusTone picks the badge color for an extraction status.
func StatusTone(status string) Tone {
	if t, ok := statusTones[strings.ToLower(status)]; ok {
		return t
	}
	return ToneNeutral
}

// RequestTone colors a document request log entry.
func RequestTone(status string) Tone {
	switch status {
	case "sent":
		return ToneSuccess
	case "failed":
		return ToneDanger
	default:
		return ToneNeutral
	}
}

// DocumentLabel is the display name of a document type.
func DocumentLabel(docType string) string {
	switch docType {
	case "aadhaar":
		return "Aadhaar"
	case "pan":
		return "PAN"
	default:
		return FieldLabel(docType)
	}
}

// OrPlaceholder returns s, or Placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
