package krdict

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lookup(t *testing.T) {
	tests := []struct {
		name              string
		query             Query
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantLen        int
		wantStatusCode int
		wantAPIError   bool
		wantError      bool
	}{
		{
			name:  "sends the search parameters and parses the entries",
			query: Query{Key: "secret", Text: "사랑", Field: FieldWord, Method: MethodInclude},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/search", r.URL.Path)
				params := r.URL.Query()
				assert.Equal(t, "secret", params.Get("key"))
				assert.Equal(t, "사랑", params.Get("q"))
				assert.Equal(t, "word", params.Get("part"))
				assert.Equal(t, "include", params.Get("method"))
				assert.Equal(t, "30", params.Get("num"))
				assert.Equal(t, "dict", params.Get("sort"))
				assert.Equal(t, "y", params.Get("advanced"))
				assert.Equal(t, "y", params.Get("translated"))
				assert.Equal(t, "3", params.Get("trans_lang"))

				w.Header().Set("Content-Type", "text/xml")
				_, _ = w.Write([]byte(sarangXML))
			},
			wantLen: 2,
		},
		{
			name:  "translation definition search in exact mode",
			query: Query{Key: "secret", Text: "amour", Field: FieldTranslationDefinition, Method: MethodExact},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "trans_dfn", r.URL.Query().Get("part"))
				assert.Equal(t, "exact", r.URL.Query().Get("method"))
				_, _ = w.Write([]byte(`<channel><total>0</total></channel>`))
			},
			wantLen: 0,
		},
		{
			name:  "non success status",
			query: Query{Key: "secret", Text: "사랑", Field: FieldWord, Method: MethodInclude},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("maintenance"))
			},
			wantError:      true,
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:  "error document",
			query: Query{Key: "wrong", Text: "사랑", Field: FieldWord, Method: MethodInclude},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<error><error_code>020</error_code><message>invalid key</message></error>`))
			},
			wantError:    true,
			wantAPIError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			config := DefaultConfig()
			config.BaseURL = server.URL + "/api/search"
			client := NewClient(config)

			got, err := client.Lookup(context.Background(), tt.query)
			if tt.wantError {
				require.Error(t, err)
				if tt.wantStatusCode != 0 {
					var statusErr *StatusError
					require.ErrorAs(t, err, &statusErr)
					assert.Equal(t, tt.wantStatusCode, statusErr.StatusCode)
				}
				if tt.wantAPIError {
					var apiErr *APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, "020", apiErr.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestClient_Lookup_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := client.Lookup(context.Background(), Query{Key: "k", Text: "사랑", Field: FieldWord, Method: MethodInclude})
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
