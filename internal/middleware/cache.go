package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

type cacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses keyed by tenant and URL.
// Theater calendars are read-mostly; a short TTL keeps admin edits from
// going stale for long.
type ResponseCache struct {
	store *cache.Cache
}

func NewResponseCache(ttl, cleanupInterval time.Duration) *ResponseCache {
	return &ResponseCache{
		store: cache.New(ttl, cleanupInterval),
	}
}

func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.GetString(ContextTenantID) + ":" + c.Request.URL.RequestURI()
		if cached, ok := rc.store.Get(key); ok {
			resp := cached.(cachedResponse)
			c.Data(resp.Status, resp.ContentType, resp.Body)
			c.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			rc.store.SetDefault(key, cachedResponse{
				Status:      c.Writer.Status(),
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.Bytes(),
			})
		}
	}
}
