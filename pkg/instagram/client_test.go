package instagram

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"igcomments/pkg/errors"
	"igcomments/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func newMockHTTPClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: &mockRoundTripper{handler: handler}}
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

// newGraphServer serves canned bodies keyed by URL path
func newGraphServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"Unknown path components","type":"OAuthException","code":2500}}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestNewClient(t *testing.T) {
	log := logger.NewTestLogger()
	client := NewClient(0, log)

	assert.NotNil(t, client.httpClient)
	assert.Equal(t, time.Duration(0), client.httpClient.Timeout)
	assert.Equal(t, BaseURL, client.baseURL)
	assert.Equal(t, APIVersion, client.apiVersion)
	assert.Equal(t, log, client.logger)
}

func TestNewClientOptions(t *testing.T) {
	custom := &http.Client{}
	client := NewClient(5*time.Second, logger.NewNopLogger(),
		WithBaseURL("http://graph.test"),
		WithAPIVersion("v20.0"),
		WithHTTPClient(custom),
	)

	assert.Equal(t, "http://graph.test", client.baseURL)
	assert.Equal(t, "v20.0", client.apiVersion)
	assert.Same(t, custom, client.httpClient)
}

func TestGetPage(t *testing.T) {
	t.Run("linked account", func(t *testing.T) {
		server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/v17.0/123": func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "instagram_business_account", r.URL.Query().Get("fields"))
				assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				writeJSON(`{"instagram_business_account":{"id":"77"},"id":"123"}`)(w, r)
			},
		})

		client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
		page, err := client.GetPage(context.Background(), "123", "tok")
		require.NoError(t, err)
		require.NotNil(t, page.InstagramBusinessAccount)
		assert.Equal(t, "77", page.InstagramBusinessAccount.ID)
	})

	t.Run("no linked account", func(t *testing.T) {
		server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/v17.0/999": writeJSON(`{"id":"999"}`),
		})

		client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
		page, err := client.GetPage(context.Background(), "999", "tok")
		require.NoError(t, err)
		assert.Nil(t, page.InstagramBusinessAccount)
	})

	t.Run("null linked account", func(t *testing.T) {
		server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/v17.0/999": writeJSON(`{"id":"999","instagram_business_account":null}`),
		})

		client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
		page, err := client.GetPage(context.Background(), "999", "tok")
		require.NoError(t, err)
		assert.Nil(t, page.InstagramBusinessAccount)
	})
}

func TestListMedia(t *testing.T) {
	server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v17.0/456/media": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "id,caption,timestamp", r.URL.Query().Get("fields"))
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			writeJSON(`{"data":[{"id":"m1","caption":"first","timestamp":"t2"},{"id":"m2","timestamp":"t1"}]}`)(w, r)
		},
	})

	client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
	media, err := client.ListMedia(context.Background(), "456", "tok", 3)
	require.NoError(t, err)
	require.Len(t, media, 2)

	assert.Equal(t, "m1", media[0].ID)
	require.NotNil(t, media[0].Caption)
	assert.Equal(t, "first", *media[0].Caption)
	assert.Nil(t, media[1].Caption)
	assert.Equal(t, "t1", media[1].Timestamp)
}

func TestListComments(t *testing.T) {
	server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v17.0/m1/comments": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "id,username,text,timestamp", r.URL.Query().Get("fields"))
			assert.False(t, r.URL.Query().Has("limit"))
			writeJSON(`{"data":[{"id":"c1","username":"bob","text":"hi","timestamp":"t1"},{"id":"c2"}]}`)(w, r)
		},
	})

	client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
	comments, err := client.ListComments(context.Background(), "m1", "tok")
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "bob", *comments[0].Username)
	assert.Equal(t, "hi", *comments[0].Text)
	assert.Equal(t, "t1", *comments[0].Timestamp)

	assert.Equal(t, "c2", comments[1].ID)
	assert.Nil(t, comments[1].Username)
	assert.Nil(t, comments[1].Text)
	assert.Nil(t, comments[1].Timestamp)
}

func TestListCommentsEmptyData(t *testing.T) {
	server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v17.0/m1/comments": writeJSON(`{}`),
	})

	client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))
	comments, err := client.ListComments(context.Background(), "m1", "tok")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCheckResponseStatus(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		expectedType errors.ErrorType
		wantMessage  string
	}{
		{name: "200 OK", statusCode: http.StatusOK},
		{name: "204 No Content", statusCode: http.StatusNoContent},
		{
			name:         "400 with graph error",
			statusCode:   http.StatusBadRequest,
			body:         `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`,
			expectedType: errors.ErrorTypeUnknown,
			wantMessage:  "Invalid OAuth access token. (type OAuthException, graph code 190)",
		},
		{
			name:         "401 Unauthorized",
			statusCode:   http.StatusUnauthorized,
			expectedType: errors.ErrorTypeAuth,
			wantMessage:  "unexpected status code: 401",
		},
		{
			name:         "404 Not Found",
			statusCode:   http.StatusNotFound,
			expectedType: errors.ErrorTypeNotFound,
		},
		{
			name:         "429 Too Many Requests",
			statusCode:   http.StatusTooManyRequests,
			expectedType: errors.ErrorTypeRateLimit,
		},
		{
			name:         "500 with non-JSON body",
			statusCode:   http.StatusInternalServerError,
			body:         "<html>oops</html>",
			expectedType: errors.ErrorTypeServerError,
			wantMessage:  "unexpected status code: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkResponseStatus(tt.statusCode, []byte(tt.body))
			if tt.expectedType == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var apiErr *errors.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.expectedType, apiErr.Type)
			assert.Equal(t, tt.statusCode, apiErr.Code)
			assert.ErrorIs(t, err, errors.ErrRemoteCall)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestGetJSONErrors(t *testing.T) {
	t.Run("network error hides the token", func(t *testing.T) {
		client := NewClient(0, logger.NewTestLogger(), WithHTTPClient(newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
			return nil, stderrors.New("connection refused")
		})))

		_, err := client.GetPage(context.Background(), "123", "secret-token")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
		assert.NotContains(t, err.Error(), "secret-token")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		client := NewClient(0, logger.NewTestLogger(), WithHTTPClient(newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
			return newResponse(http.StatusOK, `{invalid json`), nil
		})))

		_, err := client.ListMedia(context.Background(), "456", "tok", 25)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
	})

	t.Run("status error", func(t *testing.T) {
		client := NewClient(0, logger.NewTestLogger(), WithHTTPClient(newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
			return newResponse(http.StatusForbidden, `{"error":{"message":"nope","type":"OAuthException","code":10}}`), nil
		})))

		_, err := client.ListComments(context.Background(), "m1", "tok")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeAuth))
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/v17.0/123": writeJSON(`{}`),
		})
		client := NewClient(0, logger.NewTestLogger(), WithBaseURL(server.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GetPage(ctx, "123", "tok")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
	})
}

func TestRequestLoggingRedactsToken(t *testing.T) {
	server := newGraphServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v17.0/123": writeJSON(`{}`),
	})

	log := logger.NewTestLogger()
	client := NewClient(0, log, WithBaseURL(server.URL))
	_, err := client.GetPage(context.Background(), "123", "secret-token")
	require.NoError(t, err)

	msgs := log.GetMessages()
	require.NotEmpty(t, msgs)
	for _, msg := range msgs {
		if u, ok := msg.Fields["url"].(string); ok {
			assert.False(t, strings.Contains(u, "secret-token"), "token leaked in %q", u)
			assert.Contains(t, u, "access_token=REDACTED")
		}
	}
	assert.True(t, log.HasMessage("HTTP request completed"))
}
