package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// echoUser writes the authenticated user id back.
func echoUser(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(user))
}

func newAuthRouter(t *testing.T, setup func(m *jwtMocks.MockJWT)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtMock := jwtMocks.NewMockJWT(ctrl)

	if setup != nil {
		setup(jwtMock)
	}

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/bookings/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleAdmin, constant.RoleManager}},
		},
	}

	auth := middleware.NewAuthRoleMiddleware(jwtMock, mocks.NewOtel(), perms, cfg)

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(auth.APIKey)
		r.Use(auth.Auth)
		r.Use(auth.RBAC)
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/{id}", echoUser)
			r.Delete("/{id}", echoUser)
		})
	})

	return router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		header   map[string]string
		setup    func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "missing header",
			method:   http.MethodGet,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("abc").Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "any staff reads",
			method: http.MethodGet,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("abc").Return(&jwt.Claims{UserID: "staff-1", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "staff-1",
		},
		{
			name:   "receptionist cannot delete",
			method: http.MethodDelete,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("abc").Return(&jwt.Claims{UserID: "staff-1", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "manager deletes",
			method: http.MethodDelete,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("abc").Return(&jwt.Claims{UserID: "staff-2", Role: constant.RoleManager}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "staff-2",
		},
		{
			name:     "internal api key",
			method:   http.MethodDelete,
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
			wantBody: constant.InternalUser,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(t, tt.setup)

			req := httptest.NewRequest(tt.method, "/v1/bookings/42", nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	newLimited := func(t *testing.T, count int64, incrErr error) http.Handler {
		t.Helper()

		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cfg := &config.Config{}
		cfg.App.RateLimiter.Enable = true
		cfg.App.RateLimiter.MaxRequests = 2
		cfg.App.RateLimiter.WindowSeconds = 60

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(count, incrErr)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)

		return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("first request in window", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newLimited(t, 1, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("over the limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newLimited(t, 3, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("cache down lets requests through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newLimited(t, 0, errors.New("connection refused")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMetricsAndTracing(t *testing.T) {
	cfg := &config.Config{}
	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)

	router := chi.NewRouter()
	router.Use(app.CORS())
	router.Use(app.Tracing)
	router.Use(app.Metrics)
	router.Get("/v1/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/7", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
