package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/domain"
	"todo-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	todos  service.TodoService
	tokens TokenValidator
	logger *logrus.Logger
}

func NewHandler(users service.UserService, todos service.TodoService, tokens TokenValidator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:  users,
		todos:  todos,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.POST("/users", h.register)
	router.POST("/login", h.login)

	todos := router.Group("/todos", h.requireIdentity())
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)

		byID := todos.Group("/:id", h.requireOwnedTodo())
		{
			byID.GET("", h.getTodo)
			byID.PATCH("", h.updateTodo)
			byID.DELETE("", h.deleteTodo)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// updateTodoRequest uses pointers so field presence survives decoding;
// the three accepted combinations are classified by domain.NewTodoPatch.
type updateTodoRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type TodoResponse struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Done    bool   `json:"done"`
	OwnerID int64  `json:"owner_id"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	result, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authToResponse(result))
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authToResponse(result))
}

func (h *Handler) listTodos(c *gin.Context) {
	identity := mustIdentity(c)

	todos, err := h.todos.List(c.Request.Context(), identity.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTodo(c *gin.Context) {
	identity := mustIdentity(c)

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), identity.ID, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) getTodo(c *gin.Context) {
	c.JSON(http.StatusOK, todoToResponse(mustTodo(c)))
}

func (h *Handler) updateTodo(c *gin.Context) {
	todo := mustTodo(c)

	// gin's binding cannot reject unknown fields, which the partial
	// update contract requires; decode strictly instead.
	var req updateTodoRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "patch body must set text, done, or both"})
		return
	}

	patch, err := domain.NewTodoPatch(req.Text, req.Done)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "patch body must set text, done, or both"})
		return
	}

	updated, err := h.todos.Update(c.Request.Context(), todo, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*updated))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	todo := mustTodo(c)

	deleted, err := h.todos.Delete(c.Request.Context(), todo)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*deleted))
}

// writeError maps each domain error kind to its boundary outcome. The
// mapping is exhaustive over the taxonomy; anything unrecognized is a
// server fault.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		status  int
		message string
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, msgTodoNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, domain.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, "Authentication required."
	case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
		status, message = http.StatusUnauthorized, msgTokenInvalid
	case errors.Is(err, domain.ErrTokenIssuance):
		status, message = http.StatusInternalServerError, "Something went wrong while creating the token."
	case errors.Is(err, domain.ErrStore):
		status, message = http.StatusInternalServerError, "Something went wrong while performing DB operations."
	default:
		status, message = http.StatusInternalServerError, "Something went wrong."
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"message": message})
}

func authToResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		ID:       result.ID,
		Username: result.Username,
		Token:    result.Token,
	}
}

func todoToResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:      todo.ID,
		Text:    todo.Text,
		Done:    todo.Done,
		OwnerID: todo.OwnerID,
	}
}
