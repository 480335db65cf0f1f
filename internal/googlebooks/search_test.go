package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
	)
}

func TestSearchSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "quilting", r.URL.Query().Get("q"))
		require.Equal(t, "5", r.URL.Query().Get("maxResults"))
		require.Equal(t, "books", r.URL.Query().Get("printType"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		response := `{
			"totalItems": 3,
			"items": [
				{"id": "a1", "volumeInfo": {"title": "Quilting Basics", "authors": ["Jane Doe"], "publishedDate": "2001-05-01"}},
				{"id": "b2", "volumeInfo": {"title": "Patchwork Patterns", "authors": ["John Roe", "Mary Moe"]}},
				{"id": "c3", "volumeInfo": {"title": "Modern Quilts", "authors": ["Ann Poe"], "publishedDate": "2015"}}
			]
		}`
		_, _ = w.Write([]byte(response))
	})

	client := newTestClient(t, mux)

	volumes, err := client.Search(context.Background(), "quilting", 5)
	require.NoError(t, err)
	require.Len(t, volumes, 3)
	require.Equal(t, "Quilting Basics", volumes[0].VolumeInfo.Title)
	require.Equal(t, []string{"John Roe", "Mary Moe"}, volumes[1].VolumeInfo.Authors)
	require.Empty(t, volumes[1].VolumeInfo.PublishedDate)
	require.Equal(t, "2015", volumes[2].VolumeInfo.PublishedDate)
}

func TestSearchEmptyResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	})

	client := newTestClient(t, mux)

	volumes, err := client.Search(context.Background(), "nothing matches this", 5)
	require.NoError(t, err)
	require.Empty(t, volumes)
}

func TestSearchHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	client := newTestClient(t, mux)

	volumes, err := client.Search(context.Background(), "quilting", 5)
	require.Error(t, err)
	require.Nil(t, volumes)
	require.True(t, bferrors.IsRemoteServiceError(err))

	var remoteErr *bferrors.RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
}

func TestSearchMalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	})

	client := newTestClient(t, mux)

	volumes, err := client.Search(context.Background(), "quilting", 5)
	require.Error(t, err)
	require.Nil(t, volumes)
	require.True(t, bferrors.IsRemoteServiceError(err))
}

func TestSearchClampsMaxResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "40", r.URL.Query().Get("maxResults"))
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	})

	client := newTestClient(t, mux)

	_, err := client.Search(context.Background(), "quilting", 500)
	require.NoError(t, err)
}

func TestSearchRequiresQuery(t *testing.T) {
	client := NewClient("")

	volumes, err := client.Search(context.Background(), "", 5)
	require.Error(t, err)
	require.Nil(t, volumes)
	require.Contains(t, err.Error(), "query is required")
}

func TestSearchOmitsEmptyAPIKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("key"))
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient("", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.Search(context.Background(), "quilting", 5)
	require.NoError(t, err)
}
