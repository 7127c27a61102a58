package http

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/howlerhq/howler-api/pkg/logger"
)

var proxyUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
}

// ProxyHandler streams upstream CDN images through the API, since the
// media URLs Instagram hands out refuse cross-origin browser requests.
type ProxyHandler struct {
	client *http.Client
	logger logger.Logger
}

func NewProxyHandler(log logger.Logger) *ProxyHandler {
	return &ProxyHandler{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: log,
	}
}

func (h *ProxyHandler) Image(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL required"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid URL"})
		return
	}
	req.Header.Set("User-Agent", proxyUserAgents[rand.Intn(len(proxyUserAgents))])

	resp, err := h.client.Do(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch image"})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
}
