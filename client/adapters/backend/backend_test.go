package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, log, 2*time.Second)
}

func TestFetchTasks(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"tasks":[
			{"id":7,"name":"write report","day":"2025-01-01","priority":"high","type":"regular"},
			{"id":"8","name":"release","day":"2025-01-01","priority":"low","type":"project",
			 "subTasks":[{"id":"ab-1","taskId":8,"name":"tag","isCompleted":true,"timeEstimate":10}]}
		]}`)
	})

	d, err := core.ParseDay("2025-01-01")
	require.NoError(t, err)

	tasks, err := c.FetchTasks(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// numeric and quoted ids normalize to the same representation
	assert.Equal(t, core.ID("7"), tasks[0].ID)
	assert.Equal(t, core.ID("8"), tasks[1].ID)
	assert.Equal(t, core.PriorityHigh, tasks[0].Priority)
	require.Len(t, tasks[1].SubTasks, 1)
	assert.True(t, tasks[1].SubTasks[0].IsCompleted)
}

func TestUpdateTask_SendsFullRecord(t *testing.T) {
	t.Parallel()

	var got map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/5", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"5","name":"write report","day":"2025-01-01","done":true,"points":9}`)
	})

	d, err := core.ParseDay("2025-01-01")
	require.NoError(t, err)
	task := core.Task{
		ID:        "5",
		Name:      "write report",
		Day:       d,
		StartTime: core.NewClock(9, 0),
		Done:      true,
		Points:    9,
		Priority:  core.PriorityLow,
		Type:      core.TypeRegular,
	}

	updated, err := c.UpdateTask(context.Background(), task)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	assert.Equal(t, "write report", got["name"])
	assert.Equal(t, "2025-01-01", got["day"])
	assert.Equal(t, "09:00", got["startTime"])
}

func TestStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, core.ErrBadArguments},
		{"not found", http.StatusNotFound, core.ErrNotFound},
		{"server error", http.StatusInternalServerError, core.ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, core.ErrUnavailable},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, `{"error":"boom"}`)
			})

			_, err := c.FetchTasks(context.Background(), core.Day{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(srv.URL, log, time.Second)

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnavailable))
}

func TestFetchPoints(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/points", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"points":123.5}`)
	})

	points, err := c.FetchPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 123.5, points)
}

func TestDeleteSubTask(t *testing.T) {
	t.Parallel()

	var path string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteSubTask(context.Background(), "ab-1"))
	assert.Equal(t, "DELETE /api/subtasks/ab-1", path)
}
