package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"minecart-be/internal/logger"
	"minecart-be/internal/user"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(RequestID())
	r.GET("/test", func(c *gin.Context) {
		rid := logger.RequestIDFrom(c.Request.Context())
		assert.NotEmpty(t, rid)
		c.Status(http.StatusOK)
	})

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "test-id-123")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get("X-Request-ID"))
	})
}

func TestAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newTestRouter(Auth())
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	t.Run("Valid bearer token", func(t *testing.T) {
		token, err := user.GenerateJWT(7, utils.RoleBuyer, "steve@minecart.dev")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("Valid cookie token", func(t *testing.T) {
		token, err := user.GenerateJWT(8, utils.RoleSeller, "alex@minecart.dev")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"user_id":8`)
	})

	t.Run("Garbage token passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":0`)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newTestRouter(Auth(), RequireAuth())
	r.GET("/private", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Allows authenticated", func(t *testing.T) {
		token, _ := user.GenerateJWT(7, utils.RoleBuyer, "steve@minecart.dev")
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newTestRouter(Auth(), RequireRole(utils.RoleAdmin, utils.RoleSupport))
	r.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Forbids buyer", func(t *testing.T) {
		token, _ := user.GenerateJWT(7, utils.RoleBuyer, "steve@minecart.dev")
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Allows support", func(t *testing.T) {
		token, _ := user.GenerateJWT(9, utils.RoleSupport, "mod@minecart.dev")
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResolveRateTier(t *testing.T) {
	cases := []struct {
		method string
		path   string
		tier   string
	}{
		{"POST", "/api/auth/login", "strict"},
		{"POST", "/webhook/pix", "strict"},
		{"POST", "/api/orders", "strict"},
		{"GET", "/api/orders", "browse"},
		{"GET", "/api/products", "browse"},
		{"GET", "/api/cart", "general"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		_, _, tier := resolveRateTier(req)
		assert.Equal(t, tc.tier, tier, "%s %s", tc.method, tc.path)
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	r := newTestRouter(RateLimit())
	r.POST("/api/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
