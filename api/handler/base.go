package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	appLogger "github.com/kevlab/flasktaskr-project/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = httpcontext.NewAdapter(0)
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	return h.adapter.Attach(ctx)
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"status":"error","code":"INTERNAL","message":"` + transport.MsgInternal + `"}`)
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, message string, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(message, data))
}

// respondError renders err with the notice matching its class. Internal
// errors are logged and never shown.
func (h baseHandler) respondError(ctx context.Context, rc *fasthttp.RequestCtx, err error) {
	status, code, message := mapError(err)

	var detail interface{}
	if vErr, ok := domain.AsValidationError(err); ok {
		detail = vErr.Fields
	}
	if status == http.StatusInternalServerError {
		appLogger.WithRequestID(ctx, h.logger).Error("request failed",
			zap.ByteString("path", rc.Path()),
			zap.Error(err),
		)
	}
	h.respondJSON(rc, status, transport.NewError(code, message, detail))
}

func mapError(err error) (int, string, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid), transport.MsgFormInvalid
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict), transport.MsgDuplicateUser
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized), transport.MsgInvalidLogin
	case errors.Is(err, domain.ErrDeleteForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden), transport.MsgDeleteForbidden
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden), transport.MsgUpdateForbidden
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound), transport.MsgNotFound
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal), transport.MsgInternal
	}
}

// taskID extracts the {id} route parameter. Anything that is not a positive
// integer is treated as a missing task.
func taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(ctx *fasthttp.RequestCtx, key string) int {
	v, err := strconv.Atoi(string(ctx.QueryArgs().Peek(key)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
