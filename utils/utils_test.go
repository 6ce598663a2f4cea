package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDirName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Shadow Slave", "Shadow Slave"},
		{"Re:Zero / Arc 1?", "Re_Zero _ Arc 1_"},
		{"  padded  ", "padded"},
		{"", "_"},
		{"..", "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDirName(tt.input), tt.input)
	}
}

func TestDecodeHTML(t *testing.T) {
	// "café" in ISO-8859-1
	body := []byte("<p>caf\xe9</p>")
	r, err := DecodeHTML(body, "text/html; charset=ISO-8859-1")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", string(out))

	r, err = DecodeHTML([]byte("<p>plain</p>"), "")
	require.NoError(t, err)
	out, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "<p>plain</p>", string(out))
}

func TestRestyClientRetriesOnTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewRestyClient(RestyOptions{BaseURL: srv.URL, RetryCount: 2, RetryWait: time.Millisecond})
	resp, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", resp.String())
	assert.Equal(t, int32(2), calls.Load())
}
