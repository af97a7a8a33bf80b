package calculator

import (
	"encoding/json"
	"time"

	"nlcalc/internal/chart"
	"nlcalc/internal/parser"
)

// ConversionDetail describes the units of a unit-conversion result.
type ConversionDetail struct {
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Category string  `json:"category"`
}

// Result is the outcome of one calculation. A failed result carries only
// Error; a successful one carries Value or Plot.
type Result struct {
	Success       bool
	Input         string
	Expression    string
	OperationType parser.Domain
	Value         *float64
	Conversion    *ConversionDetail
	Plot          *chart.Artifact
	Error         string
	Timestamp     time.Time
}

// Number returns the numeric result, if there is one.
func (r Result) Number() (float64, bool) {
	if r.Value == nil {
		return 0, false
	}
	return *r.Value, true
}

type resultJSON struct {
	Success       bool              `json:"success"`
	Input         string            `json:"input"`
	Expression    string            `json:"expression,omitempty"`
	OperationType string            `json:"operation_type,omitempty"`
	Result        any               `json:"result,omitempty"`
	Unit          string            `json:"unit,omitempty"`
	Conversion    *ConversionDetail `json:"conversion,omitempty"`
	Formatted     string            `json:"formatted"`
	Error         string            `json:"error,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// MarshalJSON writes the number or the plot artifact under "result".
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Success:       r.Success,
		Input:         r.Input,
		Expression:    r.Expression,
		OperationType: string(r.OperationType),
		Conversion:    r.Conversion,
		Formatted:     Format(r),
		Error:         r.Error,
		Timestamp:     r.Timestamp,
	}
	switch {
	case r.Value != nil:
		out.Result = *r.Value
	case r.Plot != nil:
		out.Result = r.Plot
	}
	if r.Conversion != nil {
		out.Unit = r.Conversion.To
	}
	return json.Marshal(out)
}

// CalculateRequest is the JSON body for POST /calculate.
type CalculateRequest struct {
	Input string `json:"input"`
}

// HistoryResponse is the JSON response for GET /history.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}

// HistoryEntry mirrors history.Entry for the wire.
type HistoryEntry struct {
	Index         int       `json:"index"`
	Input         string    `json:"input"`
	Expression    string    `json:"expression"`
	OperationType string    `json:"operation_type"`
	Result        *float64  `json:"result,omitempty"`
	Display       string    `json:"display"`
	Timestamp     time.Time `json:"timestamp"`
}
