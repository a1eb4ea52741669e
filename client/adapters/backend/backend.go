package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

// Client talks to the Impulse backend over HTTP/JSON and implements the
// core.Backend port. HTTP statuses are mapped back onto the core sentinel
// errors at this boundary.
type Client struct {
	log  *slog.Logger
	base string
	http *http.Client
}

func NewClient(baseURL string, log *slog.Logger, timeout time.Duration) *Client {
	return &Client{
		log:  log,
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

var _ core.Backend = (*Client)(nil)

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *Client) FetchTasks(ctx context.Context, day core.Day) ([]core.Task, error) {
	var out struct {
		Tasks []core.Task `json:"tasks"`
	}
	path := "/api/tasks?date=" + url.QueryEscape(day.String())
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	var out core.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", t, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, t core.Task, subTasks []core.SubTask) (core.Task, error) {
	in := struct {
		core.Task
		SubTasks []core.SubTask `json:"subTasks"`
	}{Task: t, SubTasks: subTasks}

	var out core.Task
	if err := c.do(ctx, http.MethodPost, "/api/projects", in, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	var out core.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(string(t.ID)), t, &out); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id core.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(string(id)), nil, nil)
}

func (c *Client) UpdateSubTask(ctx context.Context, st core.SubTask) (core.SubTask, error) {
	var out core.SubTask
	if err := c.do(ctx, http.MethodPut, "/api/subtasks/"+url.PathEscape(string(st.ID)), st, &out); err != nil {
		return core.SubTask{}, err
	}
	return out, nil
}

func (c *Client) DeleteSubTask(ctx context.Context, id core.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/subtasks/"+url.PathEscape(string(id)), nil, nil)
}

func (c *Client) FetchPoints(ctx context.Context) (float64, error) {
	var out struct {
		Points float64 `json:"points"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/points", nil, &out); err != nil {
		return 0, err
	}
	return out.Points, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, core.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func mapStatus(method, path string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = core.ErrBadArguments
	case resp.StatusCode == http.StatusNotFound:
		sentinel = core.ErrNotFound
	case resp.StatusCode >= 500:
		sentinel = core.ErrUnavailable
	default:
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, payload.Error)
	}
	if payload.Error != "" {
		return fmt.Errorf("%s %s: %s: %w", method, path, payload.Error, sentinel)
	}
	return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, sentinel)
}
