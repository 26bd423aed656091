package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/internal/infrastructure/monitor"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status := h.monitor.Status(stdCtx)
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"sessions": map[string]interface{}{
				"online": status.Sessions,
				"driver": status.SessionDriver,
			},
		},
		"last_check": status.LastCheck,
	}

	if status.PostgreSQL && status.Sessions {
		h.respondSuccess(ctx, http.StatusOK, "", payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
