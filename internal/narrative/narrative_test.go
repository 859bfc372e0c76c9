package narrative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/balance-sheet-recon/internal/report"
)

func TestCleanModelJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"raw json untouched", `{"overall":"ok"}`, `{"overall":"ok"}`},
		{"json fence stripped", "```json\n{\"overall\":\"ok\"}\n```", `{"overall":"ok"}`},
		{"bare fence stripped", "```\n{\"overall\":\"ok\"}\n```", `{"overall":"ok"}`},
		{"surrounding whitespace", "  {\"overall\":\"ok\"}  ", `{"overall":"ok"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanModelJSON(tc.in))
		})
	}
}

func TestNoopSummarizer(t *testing.T) {
	n, err := NoopSummarizer{}.Summarize(context.Background(), nil, report.PortfolioSummary{})
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestCollaboratorUnavailableError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &CollaboratorUnavailableError{Err: cause}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "narrative collaborator unavailable")
}
