package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evently/evently/internal/client/credstore"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/common"
)

// HTTPClient talks JSON to the Evently backend. The stored credential is
// read atomically at request-build time and attached as a bearer token when
// present; the transport never rejects a request for lack of one — callers
// that need authentication gate on it before reaching this layer.
type HTTPClient struct {
	baseURL string
	creds   credstore.Store
	client  *http.Client
}

func NewHTTPClient(baseURL string, creds credstore.Store, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.creds.Read(ctx); err == nil && token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNoConnection, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrNoConnection, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, mapStatus(resp.StatusCode, data)
	}
	return data, nil
}

// mapStatus converts an error status into the shared taxonomy, keeping the
// server-provided message when one is present.
func mapStatus(status int, body []byte) error {
	var kind error
	switch status {
	case http.StatusUnauthorized:
		kind = common.ErrUnauthorized
	case http.StatusForbidden:
		kind = common.ErrForbidden
	case http.StatusNotFound:
		kind = common.ErrNotFound
	default:
		kind = common.ErrServer
	}

	if msg := serverMessage(body); msg != "" {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w (status %d)", kind, status)
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (c *HTTPClient) Verify(ctx context.Context) (*models.Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/verify", nil)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := decode("verify", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.do(ctx, http.MethodPost, "/auth/login", payload)
	if err != nil {
		return "", err
	}
	var out struct {
		AuthToken string `json:"authToken"`
	}
	if err := decode("login", body, &out); err != nil {
		return "", err
	}
	if out.AuthToken == "" {
		return "", &DecodeError{Op: "login", Err: errors.New("response carries no authToken")}
	}
	return out.AuthToken, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, name string) error {
	payload := map[string]string{"email": email, "password": password, "name": name}
	_, err := c.do(ctx, http.MethodPost, "/auth/signup", payload)
	return err
}

func (c *HTTPClient) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	path := "/events"
	query := url.Values{}
	if filter.Mine {
		query.Set("mine", "true")
	}
	if filter.Attending {
		query.Set("attending", "true")
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var events []*models.Event
	if err := decode("list events", body, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodGet, "/events/"+eventID, nil)
	if err != nil {
		return nil, err
	}

	// The details endpoint wraps the record one level deeper than the list
	// endpoint on some backend versions: {"event": {…}}.
	var wrapper struct {
		Event *models.Event `json:"event"`
	}
	if err := decode("get event", body, &wrapper); err == nil && wrapper.Event != nil {
		return wrapper.Event, nil
	}

	var event models.Event
	if err := decode("get event", body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodPost, "/events", input)
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := decode("create event", body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, eventID string, input models.EventInput) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodPut, "/events/"+eventID, input)
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := decode("update event", body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/events/"+eventID, nil)
	return err
}

func (c *HTTPClient) JoinEvent(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/join", nil)
	return err
}

func (c *HTTPClient) LeaveEvent(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/events/"+eventID+"/join", nil)
	return err
}

func (c *HTTPClient) ListFavorites(ctx context.Context) ([]*models.Event, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/me/favorites", nil)
	if err != nil {
		return nil, err
	}
	var events []*models.Event
	if err := decode("list favorites", body, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/me/favorites/"+eventID, nil)
	return err
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/me/favorites/"+eventID, nil)
	return err
}

func (c *HTTPClient) ListComments(ctx context.Context, eventID string) ([]*models.Comment, error) {
	body, err := c.do(ctx, http.MethodGet, "/comments/event/"+eventID, nil)
	if err != nil {
		return nil, err
	}
	var comments []*models.Comment
	if err := decode("list comments", body, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, input models.CommentInput) (*models.Comment, error) {
	body, err := c.do(ctx, http.MethodPost, "/comments", input)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := decode("create comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/comments/"+commentID, nil)
	return err
}

func (c *HTTPClient) LikeComment(ctx context.Context, commentID string) (*models.Comment, error) {
	body, err := c.do(ctx, http.MethodPost, "/comments/"+commentID+"/like", nil)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := decode("like comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *HTTPClient) UnlikeComment(ctx context.Context, commentID string) (*models.Comment, error) {
	body, err := c.do(ctx, http.MethodDelete, "/comments/"+commentID+"/like", nil)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := decode("unlike comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
