package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
)

const (
	identityKey = "identity"
	todoKey     = "todo"

	msgHeaderMissing   = "Auth header not present."
	msgHeaderMalformed = "Auth header is malformed or contains non-ASCII characters."
	msgTokenInvalid    = "Token is invalid or expired."
	// Used for absent todos and todos owned by someone else alike, so a
	// caller can never confirm the existence of another user's todo.
	msgTodoNotFound = "The todo that you were trying to find does not exist."
)

// TokenValidator is the part of the token service the middleware needs.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// requireIdentity authenticates the request from its Authorization
// header and stores the resulting identity in the context. It never
// touches the store.
func (h *Handler) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		values := c.Request.Header.Values("Authorization")
		if len(values) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgHeaderMissing})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(values[0]), "Bearer "))
		if !isTokenString(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgHeaderMalformed})
			return
		}

		claims, err := h.tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgTokenInvalid})
			return
		}

		c.Set(identityKey, domain.Identity{ID: claims.UserID, Username: claims.Username})
		c.Next()
	}
}

// requireOwnedTodo runs after requireIdentity on /todos/:id routes. It
// loads the target todo and authorizes the caller as its owner; a todo
// owned by another user yields the same 404 as a missing one.
func (h *Handler) requireOwnedTodo() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := mustIdentity(c)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgTodoNotFound})
			return
		}

		todo, err := h.todos.Get(c.Request.Context(), id)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		if todo.OwnerID != identity.ID {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgTodoNotFound})
			return
		}

		c.Set(todoKey, *todo)
		c.Next()
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	c.Abort()
	h.writeError(c, err)
}

func mustIdentity(c *gin.Context) domain.Identity {
	return c.MustGet(identityKey).(domain.Identity)
}

func mustTodo(c *gin.Context) domain.Todo {
	return c.MustGet(todoKey).(domain.Todo)
}

// isTokenString reports whether s is a plausible encoded token: non
// empty and limited to printable ASCII.
func isTokenString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= 0x20 || s[i] >= 0x7f {
			return false
		}
	}
	return true
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
		}).Info("request")
	}
}
