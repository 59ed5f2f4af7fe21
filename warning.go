package textscan

import (
	"fmt"
	"strings"
)

// Warning is an anomaly found and absorbed while scanning a page. Scanning
// continues past every warning.
type Warning struct {
	Page     int
	Operator string // empty for tokenizer errors
	Err      error
}

func (w Warning) Error() string {
	if w.Operator == "" {
		return fmt.Sprintf("page %d: %v", w.Page, w.Err)
	}
	return fmt.Sprintf("page %d: %s: %v", w.Page, w.Operator, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(w.Error())
	}
	return sb.String()
}
