package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/internal/middleware"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	appLogger "github.com/kevlab/flasktaskr-project/pkg/logger"
	authUC "github.com/kevlab/flasktaskr-project/usecase/auth"
	userUC "github.com/kevlab/flasktaskr-project/usecase/user"
)

const tasksPath = "/tasks/"

// UserHandler serves login, registration and logout.
type UserHandler struct {
	baseHandler
	users  *userUC.UseCase
	auth   *authUC.UseCase
	cookie middleware.SessionCookie
}

func NewUserHandler(users *userUC.UseCase, auth *authUC.UseCase, cookie middleware.SessionCookie, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		users:       users,
		auth:        auth,
		cookie:      cookie,
	}
}

func (h *UserHandler) LoginPage(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, transport.MsgLoginPrompt, nil)
}

func (h *UserHandler) Login(ctx *fasthttp.RequestCtx) {
	form := transport.ParseLoginForm(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.Authenticate(stdCtx, form.Name, form.Password)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	h.dropPreviousSession(stdCtx, ctx)

	session, token, err := h.auth.Login(stdCtx, user.ID)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	h.cookie.Set(ctx, token, session.ExpiresAt)
	appLogger.WithRequestID(stdCtx, h.logger).Info("user logged in", zap.Int64("user_id", user.ID))
	middleware.Redirect(ctx, tasksPath, transport.MsgLoggedIn)
}

// dropPreviousSession closes the session named by an incoming cookie so a
// repeat login leaves only the new one behind.
func (h *UserHandler) dropPreviousSession(stdCtx context.Context, ctx *fasthttp.RequestCtx) {
	token := h.cookie.Read(ctx)
	if token == "" {
		return
	}
	prev, err := h.auth.Resolve(stdCtx, token)
	if err != nil {
		return
	}
	if err := h.auth.Logout(stdCtx, prev.ID); err != nil {
		appLogger.WithRequestID(stdCtx, h.logger).Warn("drop previous session", zap.Error(err))
	}
}

func (h *UserHandler) RegisterPage(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, transport.MsgRegisterPrompt, nil)
}

func (h *UserHandler) Register(ctx *fasthttp.RequestCtx) {
	input := transport.ParseRegisterForm(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.users.Register(stdCtx, input); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	middleware.Redirect(ctx, middleware.LoginPath, transport.MsgRegistered)
}

// Logout runs behind RequireLogin, so a session id is always present.
func (h *UserHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.auth.Logout(stdCtx, middleware.CurrentSessionID(ctx)); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.cookie.Clear(ctx)
	middleware.Redirect(ctx, middleware.LoginPath, transport.MsgLoggedOut)
}
