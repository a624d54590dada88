package domain

import (
	"fmt"
	"strings"
)

const targetURLPrefix = "https://www.tiktok.com/"

type Engagement struct {
	ID             int64  `json:"id"`
	AccountID      int64  `json:"account_id"`
	EngagementType string `json:"engagement_type"`
	TargetURL      string `json:"target_url,omitempty"`
	TargetUsername string `json:"target_username,omitempty"`
	CommentText    string `json:"comment_text,omitempty"`
	ShareType      string `json:"share_type,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

type LikeRequest struct {
	AccountID int64  `json:"account_id"`
	TargetURL string `json:"target_url"`
}

type CommentRequest struct {
	AccountID   int64  `json:"account_id"`
	TargetURL   string `json:"target_url"`
	CommentText string `json:"comment_text"`
}

type ShareRequest struct {
	AccountID int64  `json:"account_id"`
	TargetURL string `json:"target_url"`
	ShareType string `json:"share_type"`
}

type SaveRequest struct {
	AccountID int64  `json:"account_id"`
	TargetURL string `json:"target_url"`
}

type FollowRequest struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}

var ShareTypes = []string{"copy", "facebook", "twitter", "whatsapp", "telegram"}

func validTargetURL(url string) error {
	if !strings.HasPrefix(url, targetURLPrefix) {
		return fmt.Errorf("%w: target must be a tiktok.com URL", ErrValidation)
	}
	return nil
}

func (r LikeRequest) Validate() error { return validTargetURL(r.TargetURL) }

func (r SaveRequest) Validate() error { return validTargetURL(r.TargetURL) }

func (r CommentRequest) Validate() error {
	if err := validTargetURL(r.TargetURL); err != nil {
		return err
	}
	if len(r.CommentText) < 1 || len(r.CommentText) > 150 {
		return fmt.Errorf("%w: comment must be 1-150 characters", ErrValidation)
	}
	return nil
}

func (r ShareRequest) Validate() error {
	if err := validTargetURL(r.TargetURL); err != nil {
		return err
	}
	for _, t := range ShareTypes {
		if t == r.ShareType {
			return nil
		}
	}
	return fmt.Errorf("%w: share type must be one of: %s", ErrValidation, strings.Join(ShareTypes, ", "))
}

func (r FollowRequest) Validate() error {
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return fmt.Errorf("%w: target username must be 3-50 characters", ErrValidation)
	}
	return nil
}
