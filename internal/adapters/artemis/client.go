package artemis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const (
	// SessionCookieName is the cookie the platform sets on authentication.
	SessionCookieName = "jwt"

	maxResponseBytes = 8 << 20

	authenticatePath = "/api/core/public/authenticate"
	accountPath      = "/api/core/public/account"
	dashboardPath    = "/api/core/courses/for-dashboard"
	vcsTokenPath     = "/api/core/account/participation-vcs-access-token"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Client talks to the platform REST API. Authenticated calls carry the
// session token from Sessions as the jwt cookie.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Sessions       ports.SessionProvider
}

var _ ports.PlatformClient = (*Client)(nil)

type authenticateRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type accountResponse struct {
	Login     string `json:"login"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type dashboardResponse struct {
	Courses []struct {
		Course courseResponse `json:"course"`
	} `json:"courses"`
}

type courseResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	ShortName string             `json:"shortName"`
	Exercises []exerciseResponse `json:"exercises"`
}

type exerciseResponse struct {
	ID                    int64                   `json:"id"`
	Title                 string                  `json:"title"`
	ShortName             string                  `json:"shortName"`
	ReleaseDate           *time.Time              `json:"releaseDate"`
	DueDate               *time.Time              `json:"dueDate"`
	StudentParticipations []participationResponse `json:"studentParticipations"`
}

type participationResponse struct {
	ID            int64  `json:"id"`
	RepositoryURI string `json:"repositoryUri"`
}

// Authenticate logs in with username and password and returns the value of
// the session cookie set by the server.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	body, err := json.Marshal(authenticateRequest{Username: username, Password: password, RememberMe: true})
	if err != nil {
		return "", fmt.Errorf("encode authenticate request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, authenticatePath, nil, body, false)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrInvalidCredentials
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return "", fmt.Errorf("authenticate: status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", domain.ErrSessionTokenMissing
}

func (c *Client) Account(ctx context.Context) (domain.Account, error) {
	var payload accountResponse
	if err := c.getJSON(ctx, accountPath, nil, &payload); err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = strings.TrimSpace(payload.FirstName + " " + payload.LastName)
	}
	return domain.Account{Login: payload.Login, Name: name, Email: payload.Email}, nil
}

// Courses lists the dashboard courses. Older servers answer with a bare
// course array instead of the wrapped form; both are accepted.
func (c *Client) Courses(ctx context.Context) ([]domain.Course, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, dashboardPath, nil, &raw); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	var courses []courseResponse
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return nil, fmt.Errorf("decode courses: %w", err)
		}
	} else {
		var wrapped dashboardResponse
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode courses: %w", err)
		}
		for _, entry := range wrapped.Courses {
			courses = append(courses, entry.Course)
		}
	}

	out := make([]domain.Course, 0, len(courses))
	for _, course := range courses {
		out = append(out, course.toDomain())
	}
	return out, nil
}

// VCSAccessToken returns the participation token. A missing token wraps
// domain.ErrTokenNotFound.
func (c *Client) VCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error) {
	token, err := c.vcsToken(ctx, http.MethodGet, participationID)
	if err != nil {
		return "", fmt.Errorf("get vcs access token: %w", err)
	}
	return token, nil
}

func (c *Client) CreateVCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error) {
	token, err := c.vcsToken(ctx, http.MethodPut, participationID)
	if err != nil {
		return "", fmt.Errorf("create vcs access token: %w", err)
	}
	return token, nil
}

func (c *Client) vcsToken(ctx context.Context, method string, participationID domain.ParticipationID) (string, error) {
	query := url.Values{}
	query.Set("participationId", strconv.FormatInt(int64(participationID), 10))

	resp, err := c.do(ctx, method, vcsTokenPath, query, nil, true)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrTokenNotFound
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if strings.HasPrefix(token, `"`) {
		if err := json.Unmarshal([]byte(token), &token); err != nil {
			return "", fmt.Errorf("decode token response: %w", err)
		}
	}
	if token == "" {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, true)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, authenticated bool) (*http.Response, error) {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	requestCtx, cancel := c.requestContext(ctx)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		if c.Sessions == nil {
			cancel()
			return nil, domain.ErrNotAuthenticated
		}
		session, err := c.Sessions.SessionToken(ctx)
		if err != nil {
			cancel()
			return nil, err
		}
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Raw})
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("send request: %w", err)
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", domain.ErrServerURLMissing
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("server url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("server url host is required")
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + path
	return parsed.String(), nil
}

func (c courseResponse) toDomain() domain.Course {
	course := domain.Course{
		ID:        domain.CourseID(c.ID),
		Title:     c.Title,
		ShortName: c.ShortName,
		Exercises: make([]domain.CourseExercise, 0, len(c.Exercises)),
	}
	for _, exercise := range c.Exercises {
		participations := make([]domain.Participation, 0, len(exercise.StudentParticipations))
		for _, p := range exercise.StudentParticipations {
			participations = append(participations, domain.Participation{
				ID:            domain.ParticipationID(p.ID),
				RepositoryURI: p.RepositoryURI,
			})
		}
		course.Exercises = append(course.Exercises, domain.CourseExercise{
			ID:             domain.ExerciseID(exercise.ID),
			Title:          exercise.Title,
			ShortName:      exercise.ShortName,
			ReleaseDate:    exercise.ReleaseDate,
			DueDate:        exercise.DueDate,
			Participations: participations,
		})
	}
	return course
}
