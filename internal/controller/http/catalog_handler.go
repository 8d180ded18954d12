package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tikify/internal/entity"
	"tikify/internal/hdcache"
	"tikify/internal/tikwm"
	"tikify/internal/usecase"
	"tikify/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	hdCache        hdcache.Cache
	httpClient     *http.Client
	logger         *logger.Logger
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, hdCache hdcache.Cache, httpClient *http.Client, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		hdCache:        hdCache,
		httpClient:     httpClient,
		logger:         logger,
	}
}

func (h *CatalogHandler) formatPostResponse(c *gin.Context, post *entity.Post, avatars map[string]string) map[string]interface{} {
	hdURL, ok := h.hdCache.Get(c.Request.Context(), post.ContentID)
	if !ok {
		hdURL = tikwm.HDPlayURL(post.ContentID)
	}

	response := map[string]interface{}{
		"content_id": post.ContentID,
		"username":   post.Username,
		"caption":    post.Caption,
		"cover":      post.Cover,
		"play_url":   post.PlayURL,
		"hd_url":     hdURL,
		"play_count": post.PlayCount,
		"images":     post.Images,
	}

	if avatars != nil {
		response["avatar"] = avatars[post.Username]
	}

	return response
}

func (h *CatalogHandler) avatarMap() map[string]string {
	creators, err := h.catalogUseCase.ListCreators()
	if err != nil {
		h.logger.Warn("failed to load creators for avatar lookup: %v", err)
		return map[string]string{}
	}

	avatars := make(map[string]string, len(creators))
	for _, creator := range creators {
		avatars[creator.Username] = creator.Avatar
	}
	return avatars
}

// Search godoc
// @Summary      Ingest a creator's posts
// @Description  Fetch a creator's posts from the upstream API and replace their stored catalog. Play counts reset on re-ingestion.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Creator username"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	username := c.Query("q")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	posts, err := h.catalogUseCase.Ingest(c.Request.Context(), username)
	if err != nil {
		h.logger.Error("Failed to ingest creator %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest creator"})
		return
	}

	formatted := make([]map[string]interface{}, len(posts))
	for i, post := range posts {
		formatted[i] = h.formatPostResponse(c, post, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"posts":    formatted,
	})
}

type BatchRequest struct {
	Usernames []string `json:"usernames" binding:"required,min=1"`
}

// Batch godoc
// @Summary      Batch-ingest multiple creators
// @Description  Fetch every listed creator without an item cap and append the results to the curated collection. A single username routes through the normal ingestion path.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BatchRequest true "Usernames to ingest"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /batch [post]
func (h *CatalogHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogUseCase.IngestBatch(c.Request.Context(), req.Usernames); err != nil {
		h.logger.Error("Batch ingestion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Batch ingestion failed"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "ingested"})
}

// Users godoc
// @Summary      List tracked creators
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  entity.Creator
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *CatalogHandler) Users(c *gin.Context) {
	creators, err := h.catalogUseCase.ListCreators()
	if err != nil {
		h.logger.Error("Failed to list creators: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list creators"})
		return
	}

	c.JSON(http.StatusOK, creators)
}

// Latest godoc
// @Summary      Latest post per creator
// @Description  The most recently appended post of every creator with a non-empty catalog.
// @Tags         views
// @Produce      json
// @Success      200  {array}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /latest [get]
func (h *CatalogHandler) Latest(c *gin.Context) {
	posts, err := h.catalogUseCase.LatestPerCreator()
	if err != nil {
		h.logger.Error("Failed to compute latest view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute latest view"})
		return
	}

	avatars := h.avatarMap()
	formatted := make([]map[string]interface{}, len(posts))
	for i, post := range posts {
		formatted[i] = h.formatPostResponse(c, post, avatars)
	}

	c.JSON(http.StatusOK, formatted)
}

// Top godoc
// @Summary      Top-played posts
// @Description  One post per creator (its play count maximum), ranked globally by play count descending.
// @Tags         views
// @Produce      json
// @Param        limit query int false "Maximum entries to return" default(20)
// @Success      200  {array}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /top [get]
func (h *CatalogHandler) Top(c *gin.Context) {
	limit := usecase.DefaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	posts, err := h.catalogUseCase.TopPosts(limit)
	if err != nil {
		h.logger.Error("Failed to compute top view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top view"})
		return
	}

	avatars := h.avatarMap()
	formatted := make([]map[string]interface{}, len(posts))
	for i, post := range posts {
		formatted[i] = h.formatPostResponse(c, post, avatars)
	}

	c.JSON(http.StatusOK, formatted)
}

// View godoc
// @Summary      Record a play event
// @Description  Increments the post's play count by one and returns the new count.
// @Tags         views
// @Produce      json
// @Param        video_id path string true "Content ID"
// @Success      200  {object}  map[string]int
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /view/{video_id} [post]
func (h *CatalogHandler) View(c *gin.Context) {
	contentID := c.Param("video_id")

	count, err := h.catalogUseCase.IncrementPlayCount(contentID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		h.logger.Error("Failed to increment play count for %s: %v", contentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment play count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"play_count": count})
}

// Download godoc
// @Summary      Download a video
// @Description  Streams the SD or HD media through the service and counts the download as a play event.
// @Tags         catalog
// @Produce      video/mp4
// @Param        video_id query string true "Content ID"
// @Param        hd query int false "Set to 1 for the high-definition rendition"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /download [get]
func (h *CatalogHandler) Download(c *gin.Context) {
	contentID := c.Query("video_id")
	hd := c.Query("hd") == "1"

	post, err := h.catalogUseCase.GetPost(contentID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		h.logger.Error("Failed to look up post %s: %v", contentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up post"})
		return
	}

	mediaURL := post.PlayURL
	suffix := ""
	if hd {
		suffix = "_HD"
		if cached, ok := h.hdCache.Get(c.Request.Context(), contentID); ok {
			mediaURL = cached
		} else {
			mediaURL = tikwm.HDPlayURL(contentID)
		}
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, mediaURL, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build media request"})
		return
	}
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("Failed to fetch media for %s: %v", contentID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch video"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(resp.StatusCode, gin.H{"error": "Failed to fetch video"})
		return
	}

	if _, err := h.catalogUseCase.IncrementPlayCount(contentID); err != nil {
		h.logger.Warn("Failed to count download for %s: %v", contentID, err)
	}

	filename := fmt.Sprintf("%s%s.mp4", contentID, suffix)
	c.DataFromReader(http.StatusOK, resp.ContentLength, "video/mp4", resp.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	})
}
