package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderSummaryText(t *testing.T) {
	records := buildTestRecords(t,
		account("1000 - Cash", 500, 0),
		account("9000 - Payroll Clearing", 50, 0),
	)
	s := Summarize(records, tolerance)

	text := RenderSummaryText(s, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, text, "As of: 2026-06-30")
	assert.Contains(t, text, "Mismatch:        1")
	assert.Contains(t, text, "OUT OF BALANCE")
	assert.Contains(t, text, "9000 - Payroll Clearing")
	assert.Contains(t, text, "KEY RISKS")
}

func TestRenderAccountDetail_MismatchesOnly(t *testing.T) {
	records := buildTestRecords(t,
		account("1000 - Cash", 500, 0),
		account("9000 - Payroll Clearing", 50, 0),
	)

	full := RenderAccountDetail(records, false)
	assert.Contains(t, full, "1000 - Cash [PASS]")
	assert.Contains(t, full, "9000 - Payroll Clearing [MISMATCH]")

	filtered := RenderAccountDetail(records, true)
	assert.NotContains(t, filtered, "1000 - Cash")
	assert.Contains(t, filtered, "9000 - Payroll Clearing [MISMATCH]")
	assert.Equal(t, 1, strings.Count(filtered, "[MISMATCH]"))
}
