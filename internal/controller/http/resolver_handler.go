package http

import (
	"errors"
	"net/http"

	"tikify/internal/entity"
	"tikify/internal/usecase"
	"tikify/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ResolverHandler struct {
	resolverUseCase usecase.ResolverUseCase
	logger          *logger.Logger
}

func NewResolverHandler(resolverUseCase usecase.ResolverUseCase, logger *logger.Logger) *ResolverHandler {
	return &ResolverHandler{
		resolverUseCase: resolverUseCase,
		logger:          logger,
	}
}

type ResolveRequest struct {
	URL string `json:"url" binding:"required"`
}

// Resolve godoc
// @Summary      Resolve a shared link
// @Description  Follows redirects on an arbitrary shared URL, extracts the content identifier and derives its playback URLs.
// @Tags         resolver
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResolveRequest true "URL to resolve"
// @Success      200  {object}  entity.ResolvedLink
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /resolve [post]
func (h *ResolverHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.resolverUseCase.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, entity.ErrIdentifierNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No video identifier in resolved URL"})
			return
		}
		if errors.Is(err, entity.ErrResolutionFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not resolve URL"})
			return
		}
		h.logger.Error("Failed to resolve %s: %v", req.URL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve URL"})
		return
	}

	c.JSON(http.StatusOK, link)
}

type SaveLinkRequest struct {
	ContentID string `json:"content_id" binding:"required"`
}

// SaveLink godoc
// @Summary      Pin a content ID
// @Description  Adds a content ID to the saved collection. Saving the same ID twice is a no-op.
// @Tags         resolver
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SaveLinkRequest true "Content ID to pin"
// @Success      201  {object}  entity.SavedLink
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /saved [post]
func (h *ResolverHandler) SaveLink(c *gin.Context) {
	var req SaveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.resolverUseCase.SaveLink(c.Request.Context(), req.ContentID)
	if err != nil {
		h.logger.Error("Failed to save link %s: %v", req.ContentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save link"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ListSaved godoc
// @Summary      List saved links
// @Description  Saved links, most recently added first.
// @Tags         resolver
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.SavedLink
// @Failure      500  {object}  map[string]string
// @Router       /saved [get]
func (h *ResolverHandler) ListSaved(c *gin.Context) {
	links, err := h.resolverUseCase.ListSavedLinks()
	if err != nil {
		h.logger.Error("Failed to list saved links: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// ListCollection godoc
// @Summary      List the curated creator collection
// @Description  Entries accumulated by batch ingestion, most recently added first.
// @Tags         resolver
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.CreatorLink
// @Failure      500  {object}  map[string]string
// @Router       /collection [get]
func (h *ResolverHandler) ListCollection(c *gin.Context) {
	links, err := h.resolverUseCase.ListCreatorLinks()
	if err != nil {
		h.logger.Error("Failed to list creator links: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list creator links"})
		return
	}

	c.JSON(http.StatusOK, links)
}
