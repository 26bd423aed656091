package handler

import (
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
)

// PageHandler renders the catch-all 404 and 500 responses.
type PageHandler struct {
	baseHandler
}

func NewPageHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *PageHandler {
	return &PageHandler{baseHandler: newBaseHandler(adapter, logger)}
}

func (h *PageHandler) NotFound(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), transport.MsgNotFound, nil))
}

// Panic is installed as the router's PanicHandler.
func (h *PageHandler) Panic(ctx *fasthttp.RequestCtx, recovered interface{}) {
	h.logger.Error("handler panic",
		zap.String("request_id", httpcontext.RequestID(ctx)),
		zap.ByteString("path", ctx.Path()),
		zap.String("panic", fmt.Sprint(recovered)),
		zap.Stack("stack"),
	)
	h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), transport.MsgInternal, nil))
}
