// Package session carries the per-request context every fragment renders
// against: the viewer's roles, UI language, base URL and CSRF token.
package session

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/csrf"
	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/model"
)

// Headers set by the upstream auth proxy.
const (
	HeaderRoles = "X-SafetyFlash-Roles"
	HeaderLang  = "X-SafetyFlash-Lang"
	HeaderUser  = "X-SafetyFlash-User"
)

// Context is the request-scoped viewer context.
type Context struct {
	UserID    int64
	Roles     map[string]bool
	Lang      string
	BaseURL   string
	CSRFToken string
}

// HasRole reports whether the viewer has role.
func (c *Context) HasRole(role string) bool {
	return c != nil && c.Roles[role]
}

// CanManageReviewers reports whether reviewer controls are shown: admin or safety team.
func (c *Context) CanManageReviewers() bool {
	return c.HasRole(model.RoleAdmin) || c.HasRole(model.RoleSafety)
}

// CanManagePlaylist reports whether remove/restore and playlist links are
// shown: admin, safety or communications team.
func (c *Context) CanManagePlaylist() bool {
	return c.CanManageReviewers() || c.HasRole(model.RoleComms)
}

// URL joins path onto the base URL.
func (c *Context) URL(path string) string {
	base := ""
	if c != nil {
		base = strings.TrimRight(c.BaseURL, "/")
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

type ctxKey struct{}

// With returns ctx carrying sc.
func With(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// From returns the Context stored in ctx, or an anonymous viewer when none is.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(ctxKey{}).(*Context); ok && sc != nil {
		return sc
	}
	return &Context{Roles: map[string]bool{}}
}

// ParseRoles splits a comma separated role header into a set.
func ParseRoles(header string) map[string]bool {
	roles := map[string]bool{}
	for _, r := range strings.Split(header, ",") {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			roles[r] = true
		}
	}
	return roles
}

// Middleware builds a Context from the auth proxy headers and attaches it to
// the request. Role enforcement for mutations happens in the external
// endpoints; roles here only decide which controls are rendered.
func Middleware(baseURL, defaultLang string, issuer csrf.Issuer, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.Normalize(r.Header.Get(HeaderLang))
			if lang == "" {
				lang = defaultLang
			}
			userID, _ := strconv.ParseInt(r.Header.Get(HeaderUser), 10, 64)

			sc := &Context{
				UserID:  userID,
				Roles:   ParseRoles(r.Header.Get(HeaderRoles)),
				Lang:    lang,
				BaseURL: baseURL,
			}
			if issuer != nil {
				token, err := issuer.Issue()
				if err != nil {
					log.Warn("issuing csrf token", zap.Error(err))
				}
				sc.CSRFToken = token
			}
			next.ServeHTTP(w, r.WithContext(With(r.Context(), sc)))
		})
	}
}
