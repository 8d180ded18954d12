package tikwm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tikify/internal/entity"
	"tikify/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestClient(baseURL string) *Client {
	return NewClient(logger.New(), 5*time.Second, WithBaseURL(baseURL))
}

func pageBody(videos []RawVideo, hasMore bool, cursor int64) string {
	payload := map[string]interface{}{
		"code": 0,
		"msg":  "success",
		"data": map[string]interface{}{
			"videos":   videos,
			"has_more": hasMore,
			"cursor":   cursor,
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func makeVideos(n int, prefix string) []RawVideo {
	videos := make([]RawVideo, n)
	for i := range videos {
		videos[i] = RawVideo{VideoID: fmt.Sprintf("%s-%d", prefix, i), Title: "t", Cover: "c"}
	}
	return videos
}

func TestGetUserPosts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/posts", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("unique_id"))
		assert.Equal(t, "50", r.URL.Query().Get("count"))
		assert.Equal(t, "0", r.URL.Query().Get("cursor"))
		fmt.Fprint(w, pageBody(makeVideos(2, "v"), true, 1700000001))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	page, err := client.GetUserPosts(context.Background(), "alice", 50, "0")

	assert.NoError(t, err)
	assert.Len(t, page.Videos, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "1700000001", page.Cursor)
}

func TestGetUserPosts_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":-1,"msg":"user not found"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetUserPosts(context.Background(), "nobody", 50, "0")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}

func TestFetchUserPosts_BoundedByMaxItems(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, pageBody(makeVideos(50, fmt.Sprintf("p%d", calls)), true, int64(calls)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 50, 100)

	assert.Len(t, videos, 100)
	// ceil(100/50) pages, no wasted call once the cap is reached
	assert.Equal(t, 2, calls)
}

func TestFetchUserPosts_TruncatesFinalPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pageBody(makeVideos(50, "v"), true, 1))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 50, 75)

	assert.Len(t, videos, 75)
}

func TestFetchUserPosts_StopsOnEmptyPage(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, pageBody(makeVideos(10, "v"), true, 10))
			return
		}
		fmt.Fprint(w, pageBody(nil, true, 20))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 10, 100)

	assert.Len(t, videos, 10)
	assert.Equal(t, 2, calls)
}

func TestFetchUserPosts_StopsWhenNoMorePages(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, pageBody(makeVideos(5, "v"), false, 5))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 50, 100)

	assert.Len(t, videos, 5)
	assert.Equal(t, 1, calls)
}

func TestFetchUserPosts_PartialResultOnFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, pageBody(makeVideos(10, "v"), true, 10))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 10, 100)

	// best effort: the failed page ends pagination with what was collected
	assert.Len(t, videos, 10)
}

func TestFetchUserPosts_AdvancesCursorFromResponse(t *testing.T) {
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursors = append(cursors, r.URL.Query().Get("cursor"))
		if len(cursors) == 1 {
			fmt.Fprint(w, pageBody(makeVideos(10, "a"), true, 1723456789))
			return
		}
		fmt.Fprint(w, pageBody(makeVideos(10, "b"), false, 0))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 10, 100)

	assert.Len(t, videos, 20)
	// the second request carries the opaque cursor from the first response
	assert.Equal(t, []string{"0", "1723456789"}, cursors)
}

func TestFetchUserPosts_UnboundedWhenMaxItemsZero(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		hasMore := calls < 5
		fmt.Fprint(w, pageBody(makeVideos(50, fmt.Sprintf("p%d", calls)), hasMore, int64(calls)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	videos := client.FetchUserPosts(context.Background(), "alice", 50, 0)

	assert.Len(t, videos, 250)
	assert.Equal(t, 5, calls)
}

func TestResolve_ExtractsContentID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/t/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/@user/video/7123456789012345678", http.StatusFound)
	})
	mux.HandleFunc("/@user/video/7123456789012345678", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"msg":"success","data":{"images":["i1","i2"]}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	link, err := client.Resolve(context.Background(), server.URL+"/t/short?x=1")

	assert.NoError(t, err)
	assert.Equal(t, "7123456789012345678", link.ContentID)
	assert.Equal(t, "https://www.tikwm.com/video/media/play/7123456789012345678.mp4", link.PlayURL)
	assert.Equal(t, "https://www.tikwm.com/video/media/hdplay/7123456789012345678.mp4", link.HDPlayURL)
	assert.Equal(t, []string{"i1", "i2"}, link.Images)
}

func TestResolve_NoVideoSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Resolve(context.Background(), server.URL+"/")

	assert.True(t, errors.Is(err, entity.ErrIdentifierNotFound))
}

func TestResolve_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := newTestClient(serverURL)
	_, err := client.Resolve(context.Background(), serverURL+"/t/short")

	assert.True(t, errors.Is(err, entity.ErrResolutionFailed))
}

func TestResolve_GalleryFailureDegradesToEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/@user/video/7123456789012345678", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	link, err := client.Resolve(context.Background(), server.URL+"/@user/video/7123456789012345678")

	assert.NoError(t, err)
	assert.Equal(t, "7123456789012345678", link.ContentID)
	assert.Empty(t, link.Images)
}
