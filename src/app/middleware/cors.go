package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/response"
	"qaboard/src/core/domain"
	"qaboard/src/infra/config"
)

// CORS rejects cross-origin requests whose origin, preflight method or
// preflight headers are not allowed, answering 403 through the responder.
// Accepted requests are handed to gin-contrib/cors, which writes the
// Access-Control-* headers and short-circuits preflights.
//
// An empty AllowedOrigins list accepts any origin.
func CORS(cfg config.CORSConfig, log *slog.Logger) gin.HandlerFunc {
	policy := newCORSPolicy(cfg)

	corsCfg := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	next := cors.New(corsCfg)

	return func(c *gin.Context) {
		if c.GetHeader("Origin") == "" {
			return
		}
		if reason := policy.reject(c.Request); reason != "" {
			response.FromDomainError(c, log, domain.NewCORSForbiddenError(reason), GetRequestID(c))
			return
		}
		next(c)
	}
}

type corsPolicy struct {
	anyOrigin bool
	origins   map[string]struct{}
	methods   map[string]struct{}
	headers   map[string]struct{}
}

func newCORSPolicy(cfg config.CORSConfig) *corsPolicy {
	p := &corsPolicy{
		anyOrigin: len(cfg.AllowedOrigins) == 0,
		origins:   make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:   make(map[string]struct{}, len(cfg.AllowedMethods)),
		headers:   make(map[string]struct{}, len(cfg.AllowedHeaders)),
	}
	for _, o := range cfg.AllowedOrigins {
		p.origins[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	for _, m := range cfg.AllowedMethods {
		p.methods[strings.ToUpper(strings.TrimSpace(m))] = struct{}{}
	}
	for _, h := range cfg.AllowedHeaders {
		p.headers[http.CanonicalHeaderKey(strings.TrimSpace(h))] = struct{}{}
	}
	return p
}

// reject returns a non-empty reason when the request must be refused.
func (p *corsPolicy) reject(r *http.Request) string {
	if !p.anyOrigin {
		if _, ok := p.origins[strings.ToLower(r.Header.Get("Origin"))]; !ok {
			return "origin not allowed"
		}
	}

	if r.Method != http.MethodOptions {
		return ""
	}
	method := r.Header.Get("Access-Control-Request-Method")
	if method == "" {
		return ""
	}
	if _, ok := p.methods[strings.ToUpper(method)]; !ok {
		return "request-method not allowed"
	}
	for _, h := range strings.Split(r.Header.Get("Access-Control-Request-Headers"), ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := p.headers[http.CanonicalHeaderKey(h)]; !ok {
			return "header not allowed: " + h
		}
	}
	return ""
}
