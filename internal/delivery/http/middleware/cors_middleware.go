package middleware

import "net/http"

// CORSMiddleware answers preflight requests. With no configured origins
// every origin is allowed.
type CORSMiddleware struct {
	origins map[string]struct{}
}

func NewCORSMiddleware(allowedOrigins ...string) *CORSMiddleware {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return &CORSMiddleware{origins: origins}
}

func (c *CORSMiddleware) allowOrigin(origin string) string {
	if len(c.origins) == 0 {
		return "*"
	}
	if _, ok := c.origins[origin]; ok {
		return origin
	}
	return ""
}

func (c *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := w.Header()
		if origin := c.allowOrigin(req.Header.Get("Origin")); origin != "" {
			header.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				header.Add("Vary", "Origin")
			}
		}
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		// downloads name their file here
		header.Set("Access-Control-Expose-Headers", "Content-Disposition")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, req)
	})
}
