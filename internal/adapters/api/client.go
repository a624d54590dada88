package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/nkaddour/ttc/internal/ports"
)

const maxErrorBodyBytes = 1 << 20

// Client is the request pipeline in front of the backend: every call is
// decorated with the stored bearer credential, and any 401 on a protected
// endpoint clears the credential slot and notifies the invalidation
// subscriber before the error is returned to the caller.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	creds         ports.CredentialStore
	log           logrus.FieldLogger
	onInvalidated func()
}

var (
	_ ports.AuthGateway     = (*Client)(nil)
	_ ports.ResourceGateway = (*Client)(nil)
)

func New(baseURL string, creds ports.CredentialStore, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logger
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		log:        log,
	}
}

// OnCredentialInvalidated registers the callback fired after the pipeline
// clears a rejected credential. The pipeline knows nothing about routing;
// the subscriber decides what invalidation means for the application.
func (c *Client) OnCredentialInvalidated(fn func()) {
	c.onInvalidated = fn
}

type call struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// exempt marks login and registration, which are expected to 401 on
	// bad input without tearing the session down.
	exempt bool
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "ttc")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	// Read the slot at issue time so a just-cleared credential is never
	// attached.
	if token, credErr := c.creds.Get(ctx); credErr == nil {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	} else if !errors.Is(credErr, domain.ErrCredentialNotFound) {
		c.log.WithError(credErr).Debug("credential store read failed, sending unauthenticated")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"method": req.method,
		"path":   req.path,
		"status": resp.StatusCode,
	}).Debug("backend call")

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if readErr != nil {
			body = nil
		}
		return c.statusError(ctx, resp.StatusCode, errorDetail(body), req.exempt)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) statusError(ctx context.Context, status int, detail string, exempt bool) error {
	switch {
	case status == http.StatusUnauthorized:
		if !exempt {
			c.invalidateCredential(ctx)
		}
		return &AuthError{Status: status, Detail: detail}
	case status >= 500:
		return &ServerError{Status: status, Detail: detail}
	default:
		return &ValidationError{Status: status, Detail: detail}
	}
}

func (c *Client) invalidateCredential(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.WithError(err).Warn("failed to clear invalidated credential")
	}
	if c.onInvalidated != nil {
		c.onInvalidated()
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path}, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return c.do(ctx, call{
		method:      http.MethodPut,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path}, nil)
}

// Login exchanges form-encoded credentials for a bearer token. It is
// exempt from invalidation handling: a 401 here is a wrong password, not
// a dead session.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token domain.Token
	err := c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		exempt:      true,
	}, &token)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return domain.Token{}, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, authErr.Detail)
		}
		return domain.Token{}, err
	}
	if token.AccessToken == "" {
		return domain.Token{}, errors.New("token response missing access_token")
	}

	return token, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	data, err := json.Marshal(reg)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal registration: %w", err)
	}
	err = c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/users/",
		body:        bytes.NewReader(data),
		contentType: "application/json",
		exempt:      true,
	}, &user)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/users/me/", &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.getJSON(ctx, "/tiktok-accounts/", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	var account domain.Account
	if err := c.getJSON(ctx, "/tiktok-accounts/"+formatID(id), &account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (c *Client) CreateAccount(ctx context.Context, account domain.NewAccount) (domain.Account, error) {
	var created domain.Account
	if err := c.postJSON(ctx, "/tiktok-accounts/", account, &created); err != nil {
		return domain.Account{}, err
	}
	return created, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, account domain.NewAccount) (domain.Account, error) {
	var updated domain.Account
	if err := c.putJSON(ctx, "/tiktok-accounts/"+formatID(id), account, &updated); err != nil {
		return domain.Account{}, err
	}
	return updated, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.delete(ctx, "/tiktok-accounts/"+formatID(id))
}

func (c *Client) ListProxies(ctx context.Context) ([]domain.Proxy, error) {
	var proxies []domain.Proxy
	if err := c.getJSON(ctx, "/proxies/", &proxies); err != nil {
		return nil, err
	}
	return proxies, nil
}

func (c *Client) CreateProxy(ctx context.Context, proxy domain.NewProxy) (domain.Proxy, error) {
	var created domain.Proxy
	if err := c.postJSON(ctx, "/proxies/", proxy, &created); err != nil {
		return domain.Proxy{}, err
	}
	return created, nil
}

func (c *Client) DeleteProxy(ctx context.Context, id int64) error {
	return c.delete(ctx, "/proxies/"+formatID(id))
}

func (c *Client) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	var schedules []domain.Schedule
	if err := c.getJSON(ctx, "/schedules/", &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) GetSchedule(ctx context.Context, id int64) (domain.Schedule, error) {
	var schedule domain.Schedule
	if err := c.getJSON(ctx, "/schedules/"+formatID(id), &schedule); err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

// CreateSchedule posts multipart form data so the optional video file can
// travel with the caption/time/tag fields.
func (c *Client) CreateSchedule(ctx context.Context, schedule domain.NewSchedule) (domain.Schedule, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"caption":       schedule.Caption,
		"schedule_time": schedule.ScheduleTime.Format("2006-01-02T15:04:05"),
		"account_id":    strconv.FormatInt(schedule.AccountID, 10),
	}
	if schedule.Tags != "" {
		fields["tags"] = schedule.Tags
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return domain.Schedule{}, fmt.Errorf("write form field %q: %w", name, err)
		}
	}

	if schedule.VideoFile != "" {
		video, err := os.Open(schedule.VideoFile)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("open video file: %w", err)
		}
		defer func() { _ = video.Close() }()

		part, err := writer.CreateFormFile("video", filepath.Base(schedule.VideoFile))
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("create video form part: %w", err)
		}
		if _, err := io.Copy(part, video); err != nil {
			return domain.Schedule{}, fmt.Errorf("copy video into request: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return domain.Schedule{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	var created domain.Schedule
	err := c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/schedules/",
		body:        &buf,
		contentType: writer.FormDataContentType(),
	}, &created)
	if err != nil {
		return domain.Schedule{}, err
	}

	return created, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.delete(ctx, "/schedules/"+formatID(id))
}

func (c *Client) Like(ctx context.Context, req domain.LikeRequest) (domain.Engagement, error) {
	return c.engage(ctx, "/engagements/like/", req)
}

func (c *Client) Comment(ctx context.Context, req domain.CommentRequest) (domain.Engagement, error) {
	return c.engage(ctx, "/engagements/comment/", req)
}

func (c *Client) Share(ctx context.Context, req domain.ShareRequest) (domain.Engagement, error) {
	return c.engage(ctx, "/engagements/share/", req)
}

func (c *Client) Save(ctx context.Context, req domain.SaveRequest) (domain.Engagement, error) {
	return c.engage(ctx, "/engagements/save/", req)
}

func (c *Client) Follow(ctx context.Context, req domain.FollowRequest) (domain.Engagement, error) {
	return c.engage(ctx, "/engagements/follow/", req)
}

func (c *Client) engage(ctx context.Context, path string, req any) (domain.Engagement, error) {
	var engagement domain.Engagement
	if err := c.postJSON(ctx, path, req, &engagement); err != nil {
		return domain.Engagement{}, err
	}
	return engagement, nil
}

func (c *Client) ListEngagements(ctx context.Context) ([]domain.Engagement, error) {
	var engagements []domain.Engagement
	if err := c.getJSON(ctx, "/engagements/", &engagements); err != nil {
		return nil, err
	}
	return engagements, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
