package dashboard

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkaddour/ttc/internal/application"
)

func TestRenderFullSnapshot(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.Snapshot{
		TakenAt: now,
		Counts: map[application.Source]int{
			application.SourceAccounts:    3,
			application.SourceProxies:     2,
			application.SourceSchedules:   5,
			application.SourceEngagements: 12,
		},
		Unavailable: map[application.Source]bool{},
		Upcoming: []application.UpcomingSchedule{
			{ID: 1, Caption: "morning clip", At: now.Add(45 * time.Minute), Status: "pending"},
			{ID: 2, Caption: "afternoon clip", At: now.Add(5 * time.Hour), Status: "pending"},
			{ID: 3, Caption: "weekend special", At: now.Add(3 * 24 * time.Hour), Status: "pending"},
		},
	}, RenderOptions{Now: now, Username: "demo"})

	require.NoError(t, err)
	assert.Contains(t, output, "TikTok Automation Console")
	assert.Contains(t, output, "signed in as demo")
	assert.Contains(t, output, "refreshed 11:00:00")
	assert.Contains(t, output, "accounts:")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "morning clip")
	assert.Contains(t, output, "in 45 minutes (11:45)")
	assert.Contains(t, output, "in 5 hours (16:00)")
	assert.Contains(t, output, "in 3 days (11:00 on 17 Feb)")
	assert.Contains(t, output, "[pending]")
	assert.NotContains(t, output, "unavailable")
}

func TestRenderMarksUnavailableSources(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.Snapshot{
		TakenAt: now,
		Counts: map[application.Source]int{
			application.SourceAccounts:    3,
			application.SourceProxies:     2,
			application.SourceSchedules:   5,
			application.SourceEngagements: 0,
		},
		Unavailable: map[application.Source]bool{application.SourceEngagements: true},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "unavailable")
	assert.Contains(t, output, "engagements:")
	assert.NotContains(t, output, "signed in as")
	assert.Contains(t, output, "No upcoming posts scheduled.")
}

func TestRenderTruncatesLongCaptions(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	long := "this caption is far longer than anything the dashboard column can hold"

	output, err := Render(application.Snapshot{
		TakenAt: now,
		Counts:  map[application.Source]int{application.SourceSchedules: 1},
		Upcoming: []application.UpcomingSchedule{
			{ID: 9, Caption: long, At: now.Add(time.Hour), Status: "pending"},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, long[:37]+"...")
	assert.NotContains(t, output, long)
}

func TestRenderKeepsArabicCaptionsValidWhenTruncated(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	long := strings.TrimSpace(strings.Repeat("جولة في أسواق الرياض ", 3))
	require.Greater(t, len([]rune(long)), 40)

	output, err := Render(application.Snapshot{
		TakenAt: now,
		Counts:  map[application.Source]int{application.SourceSchedules: 1},
		Upcoming: []application.UpcomingSchedule{
			{ID: 4, Caption: long, At: now.Add(time.Hour), Status: "pending"},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.True(t, utf8.ValidString(output))
	assert.Contains(t, output, string([]rune(long)[:37])+"...")
	assert.NotContains(t, output, "�")
}

func TestWatchModelShowsSpinnerThenSnapshot(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	m := NewWatchModel(RenderOptions{Username: "demo"}, nil)

	assert.Contains(t, m.View(), "loading dashboard...")

	updated, _ := m.Update(SnapshotMsg{
		TakenAt: now,
		Counts:  map[application.Source]int{application.SourceAccounts: 4},
	})
	watch, ok := updated.(WatchModel)
	require.True(t, ok)

	view := watch.View()
	assert.Contains(t, view, "TikTok Automation Console")
	assert.Contains(t, view, "signed in as demo")
	assert.Contains(t, view, "q to quit")
	assert.NotContains(t, view, "loading dashboard...")
}

func TestWatchModelQuitsOnQ(t *testing.T) {
	m := NewWatchModel(RenderOptions{}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchModelManualRefresh(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	m := NewWatchModel(RenderOptions{}, func() application.Snapshot {
		return application.Snapshot{
			TakenAt: now,
			Counts:  map[application.Source]int{application.SourceProxies: 6},
		}
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SnapshotMsg)
	require.True(t, ok)
	assert.Equal(t, 6, msg.Counts[application.SourceProxies])

	updated, _ := m.Update(msg)
	watch, ok := updated.(WatchModel)
	require.True(t, ok)
	assert.Contains(t, watch.View(), "r to refresh, q to quit")
}
