package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/kevlab/flasktaskr-project/api/handler"
)

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type Handlers struct {
	User   *apiHandler.UserHandler
	Task   *apiHandler.TaskHandler
	API    *apiHandler.APIHandler
	Page   *apiHandler.PageHandler
	Health *apiHandler.HealthHandler
}

// New registers every route. requireLogin guards the task pages and logout.
func New(handlers Handlers, requireLogin Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/users/", handlers.User.LoginPage)
	r.POST("/users/", handlers.User.Login)
	r.GET("/users/register/", handlers.User.RegisterPage)
	r.POST("/users/register/", handlers.User.Register)
	r.GET("/users/logout/", requireLogin(handlers.User.Logout))

	r.GET("/tasks/", requireLogin(handlers.Task.List))
	r.POST("/tasks/add/", requireLogin(handlers.Task.Add))
	for _, method := range []string{fasthttp.MethodGet, fasthttp.MethodPost} {
		r.Handle(method, "/tasks/complete/{id}/", requireLogin(handlers.Task.Complete))
		r.Handle(method, "/tasks/delete/{id}/", requireLogin(handlers.Task.Delete))
	}

	r.GET("/api/tasks/", handlers.API.Tasks)
	r.GET("/api/tasks/{id}", handlers.API.Task)

	r.NotFound = handlers.Page.NotFound
	r.PanicHandler = handlers.Page.Panic

	return r
}

// Handler returns the router wrapped in the given middlewares, outermost first.
func Handler(r *router.Router, middlewares ...Middleware) fasthttp.RequestHandler {
	h := r.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
