package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/gateway"
	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	UserID   string
	Body     string
}

// newFixture starts a recording backend and a gateway router in front of it.
func newFixture(t *testing.T, limiter *gateway.RateLimiter) (*gin.Engine, *recordedRequest) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorded := &recordedRequest{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*recorded = recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			UserID:   r.Header.Get(identity.Header),
			Body:     string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"relayed":true}`))
	}))
	t.Cleanup(backend.Close)

	logger := zerolog.Nop()
	proxy, err := gateway.NewProxy(backend.URL, &logger)
	require.NoError(t, err)

	router := gateway.NewRouter(gateway.Config{
		Logger:  &logger,
		Proxy:   proxy,
		Limiter: limiter,
	})
	return router, recorded
}

func perform(r *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(identity.Header, userID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestForwarding(t *testing.T) {
	t.Run("relays method path query and status", func(t *testing.T) {
		router, recorded := newFixture(t, nil)

		w := perform(router, http.MethodGet, "/items/search?text=drill&from=0&size=5", "2", "")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, `{"relayed":true}`, w.Body.String())
		assert.Equal(t, http.MethodGet, recorded.Method)
		assert.Equal(t, "/items/search", recorded.Path)
		assert.Equal(t, "text=drill&from=0&size=5", recorded.RawQuery)
		assert.Equal(t, "2", recorded.UserID)
	})

	t.Run("relays request body", func(t *testing.T) {
		router, recorded := newFixture(t, nil)

		body := `{"text":"works great"}`
		w := perform(router, http.MethodPost, "/items/10/comment", "2", body)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, body, recorded.Body)
	})

	t.Run("users routes need no identity header", func(t *testing.T) {
		router, recorded := newFixture(t, nil)

		w := perform(router, http.MethodGet, "/users/7", "", "")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "/users/7", recorded.Path)
	})
}

func TestIdentityValidation(t *testing.T) {
	router, recorded := newFixture(t, nil)

	t.Run("missing header is rejected locally", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/bookings", "", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation", errorBody(t, w).Error)
		assert.Empty(t, recorded.Path)
	})

	t.Run("non-positive header is rejected locally", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/items", "0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})
}

func TestBookingStateValidation(t *testing.T) {
	router, recorded := newFixture(t, nil)

	t.Run("unknown state is not forwarded", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/bookings?state=bogus", "2", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := errorBody(t, w)
		assert.Equal(t, "unknown_state", body.Error)
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", body.Message)
		assert.Empty(t, recorded.Path)
	})

	t.Run("known state passes through", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/bookings/owner?state=PAST", "2", "")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "/bookings/owner", recorded.Path)
	})
}

func TestPagingValidation(t *testing.T) {
	router, recorded := newFixture(t, nil)

	t.Run("negative from", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/items?from=-1", "2", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})

	t.Run("zero size", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/bookings?size=0", "2", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})

	t.Run("absent parameters pass through", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/items", "2", "")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "/items", recorded.Path)
	})
}

func TestBookingBodyValidation(t *testing.T) {
	start := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(25 * time.Hour).UTC().Format(time.RFC3339)

	cases := []struct {
		name string
		body string
	}{
		{"missing itemId", `{"start":"` + start + `","end":"` + end + `"}`},
		{"missing interval", `{"itemId":10}`},
		{"end before start", `{"itemId":10,"start":"` + end + `","end":"` + start + `"}`},
		{"start in the past", `{"itemId":10,"start":"2020-01-01T10:00:00Z","end":"` + end + `"}`},
		{"malformed json", `{"itemId":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, recorded := newFixture(t, nil)

			w := perform(router, http.MethodPost, "/bookings", "2", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, recorded.Path)
		})
	}

	t.Run("valid body is forwarded intact", func(t *testing.T) {
		router, recorded := newFixture(t, nil)

		body := `{"itemId":10,"start":"` + start + `","end":"` + end + `"}`
		w := perform(router, http.MethodPost, "/bookings", "2", body)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, body, recorded.Body)
	})
}

func TestUserBodyValidation(t *testing.T) {
	router, recorded := newFixture(t, nil)

	t.Run("email without at sign", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/users", "", `{"name":"alice","email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})

	t.Run("blank name", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/users", "", `{"name":" ","email":"a@b"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})

	t.Run("valid body is forwarded", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/users", "", `{"name":"alice","email":"alice@mail.com"}`)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "/users", recorded.Path)
	})
}

func TestItemBodyValidation(t *testing.T) {
	router, recorded := newFixture(t, nil)

	t.Run("missing available flag", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/items", "2", `{"name":"drill","description":"cordless"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, recorded.Path)
	})

	t.Run("valid body is forwarded", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/items", "2", `{"name":"drill","description":"cordless","available":true}`)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "/items", recorded.Path)
	})
}

func TestRateLimit(t *testing.T) {
	router, _ := newFixture(t, gateway.NewRateLimiter(60, 2))

	first := perform(router, http.MethodGet, "/users", "", "")
	second := perform(router, http.MethodGet, "/users", "", "")
	third := perform(router, http.MethodGet, "/users", "", "")

	assert.Equal(t, http.StatusTeapot, first.Code)
	assert.Equal(t, http.StatusTeapot, second.Code)
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "rate_limit", errorBody(t, third).Error)
}

func TestUpstreamDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()

	// Point at a server that is already closed.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	backend.Close()

	proxy, err := gateway.NewProxy(backend.URL, &logger)
	require.NoError(t, err)

	router := gateway.NewRouter(gateway.Config{Logger: &logger, Proxy: proxy})
	w := perform(router, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "bad_gateway", errorBody(t, w).Error)
}
