package imagehost

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minibook/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("MB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func stageTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0o600))
	return path
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "test-key", r.FormValue("key"))
		require.Equal(t, "minibook-test", r.FormValue("folder"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "photo.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "https://img.example/minibook-test/photo.jpg"}`))
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	url, err := client.Upload(stageTestFile(t))
	require.NoError(t, err)
	require.Equal(t, "https://img.example/minibook-test/photo.jpg", url)
}

func TestUploadRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	_, err := client.Upload(stageTestFile(t))
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	_, err := client.Upload(stageTestFile(t))
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	_, err := client.Upload(stageTestFile(t))
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadMissingFile(t *testing.T) {
	client := NewClientWith("http://127.0.0.1:0", "test-key", "minibook-test")
	_, err := client.Upload(filepath.Join(t.TempDir(), "nope.jpg"))
	require.ErrorIs(t, err, ErrUploadFailed)
}

func TestRemove(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/delete", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotURL = r.FormValue("url")
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	err := client.Remove("https://img.example/minibook-test/photo.jpg")
	require.NoError(t, err)
	require.Equal(t, "https://img.example/minibook-test/photo.jpg", gotURL)
}

func TestRemoveFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClientWith(srv.URL, "test-key", "minibook-test")
	require.Error(t, client.Remove("https://img.example/x.jpg"))
}

func TestStagingPath(t *testing.T) {
	a := StagingPath("cat.JPG")
	b := StagingPath("cat.JPG")
	require.NotEqual(t, a, b, "staging paths should not collide")
	require.True(t, strings.HasSuffix(a, ".JPG"))
	require.Contains(t, filepath.Base(a), StagedUploadPrefix)
}
