package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// ListFAQs returns every FAQ rendered in the requested language.
func (h *Handler) ListFAQs(c *gin.Context) {
	views, err := h.faqSvc.List(c.Request.Context(), requestLanguage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetFAQ returns a single FAQ rendered in the requested language.
func (h *Handler) GetFAQ(c *gin.Context) {
	id, ok := faqID(c)
	if !ok {
		return
	}
	view, err := h.faqSvc.Get(c.Request.Context(), id, requestLanguage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateFAQ stores a new FAQ; missing translations are generated before it is saved.
func (h *Handler) CreateFAQ(c *gin.Context) {
	var req faq.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(err.Error(), err))
		return
	}

	view, err := h.faqSvc.Create(c.Request.Context(), req, requestLanguage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ReplaceFAQ handles PUT, which requires both canonical fields.
func (h *Handler) ReplaceFAQ(c *gin.Context) {
	id, ok := faqID(c)
	if !ok {
		return
	}
	var req faq.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(err.Error(), err))
		return
	}
	h.update(c, id, faq.Patch{Question: &req.Question, Answer: &req.Answer})
}

// PatchFAQ handles PATCH; absent fields keep their stored value.
func (h *Handler) PatchFAQ(c *gin.Context) {
	id, ok := faqID(c)
	if !ok {
		return
	}
	var req faq.Patch
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(err.Error(), err))
		return
	}
	h.update(c, id, req)
}

func (h *Handler) update(c *gin.Context, id int64, patch faq.Patch) {
	view, err := h.faqSvc.Update(c.Request.Context(), id, patch, requestLanguage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteFAQ removes an FAQ and answers with an empty 204.
func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := faqID(c)
	if !ok {
		return
	}
	if err := h.faqSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLanguages describes the languages responses can be rendered in.
func (h *Handler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":   faq.DefaultLanguage,
		"languages": h.faqSvc.Languages(),
	})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLanguage(c *gin.Context) faq.Language {
	return faq.ResolveLanguage(c.Query("lang"))
}

func faqID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, invalidRequest("invalid faq id: "+raw, err))
		return 0, false
	}
	return id, true
}
