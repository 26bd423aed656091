package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	appLogger "github.com/kevlab/flasktaskr-project/pkg/logger"
)

const (
	userValueUser    = "user"
	userValueSession = "session_id"

	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/users/"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

type UserLoader interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// SessionCookie writes and clears the browser cookie holding the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (c SessionCookie) Read(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Cookie(c.Name))
}

func (c SessionCookie) Set(ctx *fasthttp.RequestCtx, token string, expires time.Time) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(c.Name)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(c.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(expires)
	ctx.Response.Header.SetCookie(cookie)
}

func (c SessionCookie) Clear(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(c.Name)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(c.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)
}

// RequireLogin admits only requests carrying a live session whose user still
// exists. Everyone else gets the cookie cleared and a 303 to the login page.
func RequireLogin(cookie SessionCookie, sessions SessionResolver, users UserLoader, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = httpcontext.NewAdapter(0)
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := cookie.Read(ctx)
			if token == "" {
				redirectToLogin(ctx, cookie)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			session, err := sessions.Resolve(stdCtx, token)
			var user *domain.User
			if err == nil {
				user, err = users.Get(stdCtx, session.UserID)
			}
			cancel()

			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					appLogger.WithRequestID(stdCtx, logger).Error("session lookup failed", zap.Error(err))
				}
				redirectToLogin(ctx, cookie)
				return
			}

			ctx.SetUserValue(userValueUser, user)
			ctx.SetUserValue(userValueSession, session.ID)
			next(ctx)
		}
	}
}

// CurrentUser returns the user admitted by RequireLogin, or nil.
func CurrentUser(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(userValueUser).(*domain.User)
	return user
}

func CurrentSessionID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(userValueSession).(string)
	return id
}

func redirectToLogin(ctx *fasthttp.RequestCtx, cookie SessionCookie) {
	cookie.Clear(ctx)
	Redirect(ctx, LoginPath, transport.MsgLoginRequired)
}

// Redirect sends a 303 to location with the notice in a JSON envelope.
func Redirect(ctx *fasthttp.RequestCtx, location, message string) {
	body, _ := json.Marshal(transport.NewRedirect(location, message))
	ctx.Response.Header.Set(fasthttp.HeaderLocation, location)
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusSeeOther)
	ctx.SetBody(body)
}
