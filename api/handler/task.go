package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/api/transport"
	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/internal/middleware"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	taskUC "github.com/kevlab/flasktaskr-project/usecase/task"
)

// TaskHandler serves the signed-in task pages. Every route sits behind RequireLogin.
type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	user := middleware.CurrentUser(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	open, err := h.uc.ListOpen(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	closed, err := h.uc.ListClosed(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	page := transport.TasksPage{
		OpenTasks:   taskItems(user, open),
		ClosedTasks: taskItems(user, closed),
	}
	if user != nil {
		page.Username = user.Name
		u := transport.NewUserResponse(user)
		page.User = &u
	}
	h.respondSuccess(ctx, http.StatusOK, "", page)
}

func (h *TaskHandler) Add(ctx *fasthttp.RequestCtx) {
	input := transport.ParseTaskForm(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Create(stdCtx, middleware.CurrentUser(ctx), input)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.MsgTaskPosted, transport.NewTaskResponse(*task))
}

func (h *TaskHandler) Complete(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, h.uc.Complete, transport.MsgTaskCompleted)
}

func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, h.uc.Delete, transport.MsgTaskDeleted)
}

type mutation func(ctx context.Context, user *domain.User, id int64) error

func (h *TaskHandler) mutate(ctx *fasthttp.RequestCtx, op mutation, message string) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := taskID(ctx)
	if !ok {
		h.respondError(stdCtx, ctx, domain.ErrTaskNotFound)
		return
	}
	if err := op(stdCtx, middleware.CurrentUser(ctx), id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, message, nil)
}

func taskItems(viewer *domain.User, tasks []domain.Task) []transport.TaskItem {
	items := make([]transport.TaskItem, 0, len(tasks))
	for i := range tasks {
		item := transport.TaskItem{
			TaskResponse: transport.NewTaskResponse(tasks[i]),
			CanMutate:    domain.CanMutate(viewer, &tasks[i]),
		}
		if item.CanMutate {
			id := strconv.FormatInt(tasks[i].ID, 10)
			item.CompleteURL = "/tasks/complete/" + id + "/"
			item.DeleteURL = "/tasks/delete/" + id + "/"
		}
		items = append(items, item)
	}
	return items
}
