package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	appLogger "github.com/kevlab/flasktaskr-project/pkg/logger"
	taskUC "github.com/kevlab/flasktaskr-project/usecase/task"
)

// APIHandler is the public read-only JSON API. Responses are bare JSON, no envelope.
type APIHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewAPIHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Tasks lists every task regardless of owner or status, ordered by id.
func (h *APIHandler) Tasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page := taskUC.Page{
		Limit:  queryInt(ctx, "limit"),
		Offset: queryInt(ctx, "offset"),
	}
	tasks, err := h.uc.ListAll(stdCtx, page)
	if err != nil {
		h.internalError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(tasks))
}

func (h *APIHandler) Task(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := taskID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusNotFound, transport.APIError{Error: transport.MsgElementNotPresent})
		return
	}

	task, err := h.uc.Get(stdCtx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			h.respondJSON(ctx, http.StatusNotFound, transport.APIError{Error: transport.MsgElementNotPresent})
			return
		}
		h.internalError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskResponse(*task))
}

func (h *APIHandler) internalError(stdCtx context.Context, ctx *fasthttp.RequestCtx, err error) {
	appLogger.WithRequestID(stdCtx, h.logger).Error("api request failed", zap.ByteString("path", ctx.Path()), zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.APIError{Error: transport.MsgInternal})
}
