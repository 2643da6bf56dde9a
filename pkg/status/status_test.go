package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naveenspark/hackboard/pkg/domain"
)

func day(s string) time.Time {
	return domain.MustParseDate(s).Time
}

func window() domain.Hackathon {
	return domain.Hackathon{
		ID:        "h1",
		StartDate: domain.MustParseDate("2025-01-01"),
		EndDate:   domain.MustParseDate("2025-01-10"),
	}
}

func joined(h domain.Hackathon) domain.Hackathon {
	h.HasJoined = true
	return h
}

func submitted(h domain.Hackathon) domain.Hackathon {
	h.HasJoined = true
	h.HasSubmitted = &domain.SubmissionRef{ID: "s1"}
	return h
}

func published(h domain.Hackathon) domain.Hackathon {
	h = submitted(h)
	h.IsResultPublished = true
	return h
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		now  string
		h    domain.Hackathon
		auth bool
		want Kind
	}{
		{"anon before start", "2024-12-20", window(), false, SignInRequired},
		{"anon during", "2025-01-05", window(), false, SignInRequired},
		{"anon at end instant", "2025-01-10", window(), false, SignInRequired},
		{"anon after end", "2025-01-11", published(window()), false, Closed},

		{"before start not joined", "2024-12-20", window(), true, Join},
		{"before start joined", "2024-12-20", joined(window()), true, Joined},

		{"during not joined", "2025-01-05", window(), true, Join},
		{"during joined", "2025-01-05", joined(window()), true, Submit},
		{"during submitted", "2025-01-05", submitted(window()), true, Submitted},
		{"start instant joined", "2025-01-01", joined(window()), true, Submit},

		{"grace period published", "2025-01-12", published(window()), true, Closed},
		{"window open published", "2025-01-15", published(window()), true, Submitted},
		{"window open unpublished", "2025-01-20", submitted(window()), true, Closed},
		{"window open never submitted", "2025-01-20", joined(window()), true, Closed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(day(tt.now), tt.h, tt.auth)
			assert.Equal(t, tt.want, got.Kind, "Evaluate(%s) = %s", tt.now, got.Label())
		})
	}
}

func TestEvaluateScenarioSubmit(t *testing.T) {
	h := joined(window())
	got := Evaluate(day("2025-01-05"), h, true)
	assert.Equal(t, Submit, got.Kind)
	assert.True(t, got.Actionable())
	assert.Equal(t, IconUpload, got.Icon())
}

func TestEvaluateScenarioUnpublished(t *testing.T) {
	h := submitted(window())
	now := day("2025-01-20")
	assert.Equal(t, Closed, Evaluate(now, h, true).Kind)
	assert.False(t, CanViewResults(h, true))
}

func TestEvaluateScenarioPublished(t *testing.T) {
	h := published(window())
	for _, now := range []string{"2025-01-15", "2025-01-16", "2025-03-01", "2026-01-01"} {
		got := Evaluate(day(now), h, true)
		assert.Equal(t, Submitted, got.Kind, "now=%s", now)
	}
	assert.True(t, CanViewResults(h, true))
}

func TestEvaluateBeforeStartNeverAdvances(t *testing.T) {
	variants := []domain.Hackathon{window(), joined(window()), submitted(window()), published(window())}
	for hour := 1; hour <= 24*30; hour += 7 {
		now := day("2025-01-01").Add(-time.Duration(hour) * time.Hour)
		for _, h := range variants {
			got := Evaluate(now, h, true).Kind
			assert.Contains(t, []Kind{Join, Joined}, got, "now=%v joined=%v", now, h.HasJoined)
		}
	}
}

func TestEvaluateDuringWindowUnjoinedIsJoin(t *testing.T) {
	h := window()
	h.HasSubmitted = &domain.SubmissionRef{ID: "inconsistent"}
	h.IsResultPublished = true
	for hour := 0; hour <= 9*24; hour += 5 {
		now := day("2025-01-01").Add(time.Duration(hour) * time.Hour)
		assert.Equal(t, Join, Evaluate(now, h, true).Kind, "now=%v", now)
	}
}

func TestEvaluatePublishedPolicy(t *testing.T) {
	h := published(window())
	now := day("2025-01-12")

	assert.Equal(t, Closed, Evaluate(now, h, true).Kind)
	assert.Equal(t, Submitted, Evaluate(now, h, true, WithPolicy(PolicyPublished)).Kind)

	unpublished := submitted(window())
	assert.Equal(t, Closed, Evaluate(now, unpublished, true, WithPolicy(PolicyPublished)).Kind)
}

func TestCanViewResults(t *testing.T) {
	tests := []struct {
		name string
		h    domain.Hackathon
		auth bool
		want bool
	}{
		{"all set", published(window()), true, true},
		{"anonymous", published(window()), false, false},
		{"not published", submitted(window()), true, false},
		{"not submitted", joined(window()), true, false},
		{"nothing", window(), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewResults(tt.h, tt.auth))
		})
	}
}

func TestStatusActionable(t *testing.T) {
	want := map[Kind]bool{
		SignInRequired: true,
		Join:           true,
		Joined:         false,
		Submit:         true,
		Submitted:      false,
		Closed:         false,
	}
	for k, actionable := range want {
		assert.Equal(t, actionable, Status{Kind: k}.Actionable(), k.String())
	}
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyPublished, ParsePolicy("published"))
	assert.Equal(t, PolicyResultsWindow, ParsePolicy("window"))
	assert.Equal(t, PolicyResultsWindow, ParsePolicy(""))
	assert.Equal(t, PolicyResultsWindow, ParsePolicy("nonsense"))
}

func TestLifecycle(t *testing.T) {
	h := window()
	assert.Equal(t, Upcoming, Lifecycle(day("2024-12-31"), h))
	assert.Equal(t, Live, Lifecycle(day("2025-01-01"), h))
	assert.Equal(t, Live, Lifecycle(day("2025-01-10"), h))
	assert.Equal(t, Completed, Lifecycle(day("2025-01-11"), h))
	assert.Equal(t, "Live Now", Live.String())
}
