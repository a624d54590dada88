package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nkaddour/ttc/internal/application"
)

type RenderOptions struct {
	Now      time.Time
	Username string
}

var sourceLabels = map[application.Source]string{
	application.SourceAccounts:    "accounts",
	application.SourceProxies:     "proxies",
	application.SourceSchedules:   "schedules",
	application.SourceEngagements: "engagements",
}

func renderView(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("TikTok Automation Console"),
		s.header.Render(headerLine(snapshot, opts)),
		"",
	}

	for _, source := range application.Sources {
		lines = append(lines, countLine(snapshot, source, s))
	}

	lines = append(lines, s.section.Render(renderUpcoming(snapshot.Upcoming, opts.Now, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(snapshot application.Snapshot, opts RenderOptions) string {
	refreshed := "refreshed just now"
	if !snapshot.TakenAt.IsZero() {
		refreshed = fmt.Sprintf("refreshed %s", snapshot.TakenAt.Format("15:04:05"))
	}
	if opts.Username == "" {
		return refreshed
	}
	return fmt.Sprintf("signed in as %s, %s", opts.Username, refreshed)
}

func countLine(snapshot application.Snapshot, source application.Source, s styles) string {
	label := s.sourceKey.Render(fmt.Sprintf("%-12s", sourceLabels[source]+":"))
	if snapshot.Unavailable[source] {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.unavailable.Render("unavailable"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.count.Render(fmt.Sprintf("%d", snapshot.Count(source))))
}

func renderUpcoming(upcoming []application.UpcomingSchedule, now time.Time, s styles) string {
	parts := []string{s.sectionName.Render(fmt.Sprintf("Next %d posts", application.UpcomingLimit))}

	if len(upcoming) == 0 {
		parts = append(parts, s.empty.Render("No upcoming posts scheduled."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, entry := range upcoming {
		parts = append(parts, upcomingLine(entry, now, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func upcomingLine(entry application.UpcomingSchedule, now time.Time, s styles) string {
	caption := strings.TrimSpace(entry.Caption)
	// Truncate by runes, not bytes: captions are often Arabic and a byte
	// slice could cut a character in half.
	if runes := []rune(caption); len(runes) > 40 {
		caption = string(runes[:37]) + "..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.caption.Render(fmt.Sprintf("#%-4d %-42s", entry.ID, caption)),
		" ",
		s.eta.Render(formatEta(entry.At, now)),
		" ",
		s.status.Render(fmt.Sprintf("[%s]", entry.Status)),
	)
}

// formatEta renders a post time relative to now: minutes under an hour,
// hours under a day, days beyond that.
func formatEta(at, now time.Time) string {
	if now.IsZero() {
		return "posts at " + at.Format("15:04 on 02 Jan")
	}
	if at.Before(now) {
		return "posting now"
	}

	remaining := at.Sub(now)
	switch {
	case remaining < time.Hour:
		minutes := int(math.Ceil(remaining.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("in %d %s (%s)", minutes, plural(minutes, "minute"), at.Format("15:04"))
	case remaining < 24*time.Hour:
		hours := int(math.Ceil(remaining.Hours()))
		return fmt.Sprintf("in %d %s (%s)", hours, plural(hours, "hour"), at.Format("15:04"))
	default:
		days := int(math.Ceil(remaining.Hours() / 24))
		return fmt.Sprintf("in %d %s (%s)", days, plural(days, "day"), at.Format("15:04 on 02 Jan"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
