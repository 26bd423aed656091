package transport

import (
	"github.com/valyala/fasthttp"

	taskUC "github.com/kevlab/flasktaskr-project/usecase/task"
	userUC "github.com/kevlab/flasktaskr-project/usecase/user"
)

// LoginForm is the body of POST /users/.
type LoginForm struct {
	Name     string
	Password string
}

func ParseLoginForm(ctx *fasthttp.RequestCtx) LoginForm {
	return LoginForm{
		Name:     formValue(ctx, "name"),
		Password: formValue(ctx, "password"),
	}
}

func ParseRegisterForm(ctx *fasthttp.RequestCtx) userUC.RegisterInput {
	return userUC.RegisterInput{
		Name:     formValue(ctx, "name"),
		Email:    formValue(ctx, "email"),
		Password: formValue(ctx, "password"),
		Confirm:  formValue(ctx, "confirm"),
	}
}

func ParseTaskForm(ctx *fasthttp.RequestCtx) taskUC.Input {
	return taskUC.Input{
		Name:       formValue(ctx, "name"),
		DueDate:    formValue(ctx, "due_date"),
		Priority:   formValue(ctx, "priority"),
		PostedDate: formValue(ctx, "posted_date"),
		Status:     formValue(ctx, "status"),
	}
}

// formValue reads urlencoded and multipart bodies alike.
func formValue(ctx *fasthttp.RequestCtx, key string) string {
	if v := ctx.PostArgs().Peek(key); v != nil {
		return string(v)
	}
	return string(ctx.FormValue(key))
}
