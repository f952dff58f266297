package cli

import (
	"encoding/json"
	"os"

	"codectx/internal/report"
)

// printRecords writes batch results to stdout as indented JSON.
func printRecords(records []report.Record) error {
	type jsonRecord struct {
		Location  string `json:"location"`
		Line      int    `json:"line"`
		Language  string `json:"language,omitempty"`
		StartLine int    `json:"start_line,omitempty"`
		EndLine   int    `json:"end_line,omitempty"`
		Kind      string `json:"kind,omitempty"`
		Text      string `json:"text,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			Location:  r.Location,
			Line:      r.Line,
			Language:  r.Language,
			StartLine: r.StartLine,
			EndLine:   r.EndLine,
			Kind:      r.Kind,
			Text:      r.Text,
			Error:     r.Error,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
