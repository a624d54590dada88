package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusFailed    = "failed"
)

// Schedule is a scheduled post as returned by the backend. ScheduleTime is
// kept as the wire string because the backend emits naive ISO timestamps;
// use Time to interpret it.
type Schedule struct {
	ID           int64  `json:"id"`
	Caption      string `json:"caption"`
	ScheduleTime string `json:"schedule_time"`
	Tags         string `json:"tags,omitempty"`
	VideoPath    string `json:"video_path"`
	Status       string `json:"status"`
}

// Time parses the schedule timestamp. The second return is false for
// malformed values.
func (s Schedule) Time() (time.Time, bool) {
	return ParseScheduleTime(s.ScheduleTime)
}

// ParseScheduleTime accepts RFC 3339 as well as the backend's naive
// "2006-01-02T15:04:05" form, interpreted in local time.
func ParseScheduleTime(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// NewSchedule carries the multipart fields for schedule creation.
// VideoFile is a local path; empty means no attachment.
type NewSchedule struct {
	AccountID    int64
	Caption      string
	ScheduleTime time.Time
	Tags         string
	VideoFile    string
}

var videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".avi": true}

func (s NewSchedule) Validate(now time.Time) error {
	if s.AccountID <= 0 {
		return fmt.Errorf("%w: account id is required", ErrValidation)
	}
	if strings.TrimSpace(s.Caption) == "" {
		return fmt.Errorf("%w: caption is required", ErrValidation)
	}
	if !s.ScheduleTime.After(now) {
		return fmt.Errorf("%w: schedule time must be in the future", ErrValidation)
	}
	if s.VideoFile != "" {
		ext := strings.ToLower(filepath.Ext(s.VideoFile))
		if !videoExtensions[ext] {
			return fmt.Errorf("%w: video must be an mp4, mov or avi file", ErrValidation)
		}
	}
	return nil
}
