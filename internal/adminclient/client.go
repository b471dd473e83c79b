package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/portfolio/portfolio-api/internal/domain/herophoto"
	"github.com/portfolio/portfolio-api/internal/domain/message"
	"github.com/portfolio/portfolio-api/internal/domain/project"
	"github.com/portfolio/portfolio-api/internal/domain/resume"
	"github.com/portfolio/portfolio-api/internal/domain/video"
)

const (
	defaultTimeout = 30 * time.Second
	passwordHeader = "X-Admin-Password"
)

var (
	// ErrUnauthorized means the server rejected the admin password. The
	// session has already been cleared when it is returned.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer other than 401 and 404
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, k+": "+v)
		}
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client talks to the portfolio API on behalf of the admin.
type Client struct {
	baseURL string
	session *Session
	ua      string
	http    *http.Client
}

// NewClient creates a client bound to session. session.BaseURL is used as
// the server address.
func NewClient(session *Session, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(session.BaseURL, "/"),
		session: session,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Session returns the session the client authenticates with
func (c *Client) Session() *Session {
	return c.session
}

// envelope mirrors the server's standard response
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// ProjectInput is the form sent when creating or editing a project. Nil
// fields are not sent, so an edit leaves them unchanged.
type ProjectInput struct {
	Title       *string
	Description *string
	ProjectURL  *string
	ImagePath   string
}

// VideoInput is the body sent when creating or editing a video
type VideoInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
}

// HeroPhotoInput is the form sent when creating or editing a hero photo
type HeroPhotoInput struct {
	Alt       *string
	PositionX *int
	PositionY *int
	ImagePath string
}

// Verify checks the session password against an admin-only route
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.Messages(ctx)
	return err
}

// Messages

func (c *Client) Messages(ctx context.Context) ([]*message.Message, error) {
	var out []*message.Message
	return out, c.getList(ctx, "/api/messages", &out)
}

func (c *Client) ToggleMessageRead(ctx context.Context, id int64) (*message.Message, error) {
	var out message.Message
	if err := c.doJSON(ctx, http.MethodPatch, "/api/messages/"+itoa(id)+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/messages/"+itoa(id), nil, nil)
}

// Projects

func (c *Client) Projects(ctx context.Context) ([]*project.Project, error) {
	var out []*project.Project
	return out, c.getList(ctx, "/api/projects", &out)
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*project.Project, error) {
	var out project.Project
	fields := setFields(map[string]*string{
		"title":       in.Title,
		"description": in.Description,
		"projectUrl":  in.ProjectURL,
	})
	if err := c.doMultipart(ctx, http.MethodPost, "/api/projects", fields, "image", in.ImagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (*project.Project, error) {
	var out project.Project
	fields := setFields(map[string]*string{
		"title":       in.Title,
		"description": in.Description,
		"projectUrl":  in.ProjectURL,
	})
	if err := c.doMultipart(ctx, http.MethodPut, "/api/projects/"+itoa(id), fields, "image", in.ImagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/projects/"+itoa(id), nil, nil)
}

func (c *Client) ReorderProjects(ctx context.Context, ids []int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/projects/reorder", map[string][]int64{"ids": ids}, nil)
}

// Videos

func (c *Client) Videos(ctx context.Context) ([]*video.Video, error) {
	var out []*video.Video
	return out, c.getList(ctx, "/api/videos", &out)
}

func (c *Client) CreateVideo(ctx context.Context, in VideoInput) (*video.Video, error) {
	var out video.Video
	if err := c.doJSON(ctx, http.MethodPost, "/api/videos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVideo(ctx context.Context, id int64, in VideoInput) (*video.Video, error) {
	var out video.Video
	if err := c.doJSON(ctx, http.MethodPut, "/api/videos/"+itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVideo(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/videos/"+itoa(id), nil, nil)
}

func (c *Client) ReorderVideos(ctx context.Context, ids []int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/videos/reorder", map[string][]int64{"ids": ids}, nil)
}

// Hero photos

func (c *Client) HeroPhotos(ctx context.Context) ([]*herophoto.HeroPhoto, error) {
	var out []*herophoto.HeroPhoto
	return out, c.getList(ctx, "/api/hero-photos", &out)
}

func (c *Client) CreateHeroPhoto(ctx context.Context, in HeroPhotoInput) (*herophoto.HeroPhoto, error) {
	var out herophoto.HeroPhoto
	if err := c.doMultipart(ctx, http.MethodPost, "/api/hero-photos", heroFields(in), "image", in.ImagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHeroPhoto(ctx context.Context, id int64, in HeroPhotoInput) (*herophoto.HeroPhoto, error) {
	var out herophoto.HeroPhoto
	if err := c.doMultipart(ctx, http.MethodPut, "/api/hero-photos/"+itoa(id), heroFields(in), "image", in.ImagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHeroPhoto(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/hero-photos/"+itoa(id), nil, nil)
}

func (c *Client) ReorderHeroPhotos(ctx context.Context, ids []int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/hero-photos/reorder", map[string][]int64{"ids": ids}, nil)
}

// Resume

// Resume returns the current resume or ErrNotFound
func (c *Client) Resume(ctx context.Context) (*resume.Resume, error) {
	var out resume.Resume
	if err := c.doJSON(ctx, http.MethodGet, "/api/resume", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadResume(ctx context.Context, path string) (*resume.Resume, error) {
	var out resume.Resume
	if err := c.doMultipart(ctx, http.MethodPost, "/api/resume", nil, "resume", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResume(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/resume", nil, nil)
}

// getList decodes a bare JSON array
func (c *Client) getList(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	body, err := c.send(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, reader, contentType)
	if err != nil {
		return err
	}
	body, err := c.send(req)
	if err != nil {
		return err
	}
	return decodeEnvelope(body, out)
}

// doMultipart sends fields plus an optional file part. The part's
// Content-Type is set from the sniffed file content, since the server
// checks the declared type.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	if filePath != "" {
		if err := writeFilePart(mw, fileField, filePath); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	body, err := c.send(req)
	if err != nil {
		return err
	}
	return decodeEnvelope(body, out)
}

func writeFilePart(mw *multipart.Writer, field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	h.Set("Content-Type", mimetype.Detect(data).String())

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, errors.New("server URL is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.session.Password != "" {
		req.Header.Set(passwordHeader, c.session.Password)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	return req, nil
}

// send performs req and returns the body of a 2xx answer
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if clearErr := c.session.Clear(); clearErr != nil {
			return nil, errors.Join(ErrUnauthorized, clearErr)
		}
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		return nil, apiErr
	}
	return body, nil
}

func decodeEnvelope(body []byte, out any) error {
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func heroFields(in HeroPhotoInput) map[string]string {
	fields := setFields(map[string]*string{"alt": in.Alt})
	if in.PositionX != nil {
		fields["positionX"] = strconv.Itoa(*in.PositionX)
	}
	if in.PositionY != nil {
		fields["positionY"] = strconv.Itoa(*in.PositionY)
	}
	return fields
}

// setFields keeps the non-nil values; an empty string is still sent.
func setFields(fields map[string]*string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("request timed out: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("server unreachable: %w", err)
	}
	return fmt.Errorf("request failed: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}
