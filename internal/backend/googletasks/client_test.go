package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeAPI serves the handful of Tasks API routes the client calls.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/tasks/v1/users/@me/lists/@default", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": "L1", "title": "My Tasks"})
	})
	mux.HandleFunc("/tasks/v1/users/@me/lists", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"items": []map[string]any{
			{"id": "L1", "title": "My Tasks"},
			{"id": "L2", "title": "Work"},
		}})
	})
	mux.HandleFunc("/tasks/v1/lists/L2/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("showCompleted"))
		assert.Equal(t, "true", r.URL.Query().Get("showHidden"))
		writeJSON(w, map[string]any{"items": []map[string]any{
			{"id": "t1", "title": "Draft plan", "notes": "outline", "status": "needsAction"},
			{"id": "t2", "title": "Ship", "status": "completed"},
		}})
	})
	mux.HandleFunc("/tasks/v1/lists/missing/tasks", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := fakeAPI(t)
	c, err := NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

func TestListLists(t *testing.T) {
	c := newTestClient(t)

	lists, err := c.ListLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.True(t, lists[0].IsDefault)
	assert.Equal(t, "Work", lists[1].Title)
	assert.False(t, lists[1].IsDefault)
}

func TestResolveList(t *testing.T) {
	c := newTestClient(t)

	list, err := c.ResolveList(context.Background(), "  work ")
	require.NoError(t, err)
	assert.Equal(t, "L2", list.ID)

	_, err = c.ResolveList(context.Background(), "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTasks(t *testing.T) {
	c := newTestClient(t)

	got, err := c.ListTasks(context.Background(), "L2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Draft plan", got[0].Title)
	assert.Equal(t, "outline", got[0].Notes)
	assert.Equal(t, "completed", got[1].Status)
}

func TestListTasks_NotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ListTasks(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, wrapError(nil))
	assert.Equal(t, "request timed out", wrapError(errors.New("Get x: context deadline exceeded")).Error())
	assert.True(t, strings.Contains(wrapError(errors.New("googleapi: Error 401")).Error(), "taskboard login"))
	assert.Equal(t, "boom", wrapError(errors.New("boom")).Error())
}
