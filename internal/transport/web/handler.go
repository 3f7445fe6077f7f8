package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/pkg/conv"
	"github.com/jkruckivey/assessments/pkg/log"
)

const (
	errEmptyMessage   = "Message cannot be empty"
	errInvalidBody    = "Invalid request body"
	errNotInitialized = "Bot not initialized. Please check API key configuration."
	errKBUnavailable  = "Bot not initialized"
	errInternal       = "An error occurred processing your message"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/chat.html"))

// Handler serves the chat page and JSON API.
type Handler struct {
	pipeline *assistant.Pipeline
	docs     *knowledge.Store
	sessions core.SessionStore
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler builds the HTTP handlers. A nil pipeline means no model provider
// is configured; the API then answers with "not initialized" errors.
func NewHandler(pipeline *assistant.Pipeline, docs *knowledge.Store, sessions core.SessionStore) *Handler {
	return &Handler{
		pipeline: pipeline,
		docs:     docs,
		sessions: sessions,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/chat", h.Chat)
	api.GET("/knowledge-base", h.KnowledgeBase)
	api.POST("/clear-conversation", h.ClearConversation)
}

func (h *Handler) initialized() bool {
	return h.pipeline != nil
}

type pageData struct {
	Title   string
	Version string
}

func (h *Handler) Index(c echo.Context) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Title: core.BotName, Version: core.Version}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Response  string `json:"response"`
	HTML      string `json:"html"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) Chat(c echo.Context) error {
	if !h.initialized() {
		return c.JSON(http.StatusInternalServerError, errorBody(errNotInitialized))
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(errInvalidBody))
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(errEmptyMessage))
	}

	ctx := c.Request().Context()
	logger := log.FromCtx(ctx)
	id := sessionID(c)

	history, err := h.sessions.GetHistory(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("session", id).Msg("failed to load history")
		history = nil
	}

	reply := h.pipeline.Respond(ctx, req.Message, history)
	now := h.now()

	updated := assistant.AppendExchange(history, req.Message, reply, now)
	if err := h.sessions.SaveHistory(ctx, id, updated); err != nil {
		logger.Error().Err(err).Str("session", id).Msg("failed to save history")
	}

	return c.JSON(http.StatusOK, chatResponse{
		Response:  reply,
		HTML:      conv.MarkdownToHTML([]byte(reply)),
		Timestamp: now.Format(time.RFC3339Nano),
	})
}

type documentSummary struct {
	Title    string        `json:"title"`
	Category core.Category `json:"category"`
}

func (h *Handler) KnowledgeBase(c echo.Context) error {
	if !h.initialized() {
		return c.JSON(http.StatusInternalServerError, errorBody(errKBUnavailable))
	}

	structure := make(map[string]documentSummary, h.docs.Len())
	for _, doc := range h.docs.Documents() {
		structure[doc.Key] = documentSummary{Title: doc.Title, Category: doc.Category}
	}
	return c.JSON(http.StatusOK, structure)
}

func (h *Handler) ClearConversation(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.sessions.ClearHistory(ctx, sessionID(c)); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to clear history")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}

type healthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	BotInitialized    bool   `json:"bot_initialized"`
	KnowledgeBaseSize int    `json:"knowledge_base_size"`
}

func (h *Handler) Health(c echo.Context) error {
	size := 0
	if h.initialized() {
		size = h.docs.Len()
	}
	return c.JSON(http.StatusOK, healthResponse{
		Status:            "healthy",
		Timestamp:         h.now().Format(time.RFC3339Nano),
		BotInitialized:    h.initialized(),
		KnowledgeBaseSize: size,
	})
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// errorHandler renders every error as {"error": message}. Errors that are not
// *echo.HTTPError become a generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := errInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		log.FromCtx(c.Request().Context()).Error().Err(err).Str("uri", c.Request().RequestURI).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody(msg))
}
