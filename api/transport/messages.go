package transport

// User-facing notices.
const (
	MsgLoginPrompt       = "Please sign in to access your task list"
	MsgRegisterPrompt    = "Please register to start a task list"
	MsgInvalidLogin      = "Invalid username or password."
	MsgLoggedIn          = "You are logged in."
	MsgLoggedOut         = "You are logged out. Bye."
	MsgLoginRequired     = "You need to login first."
	MsgRegistered        = "Thanks for registering. Please login."
	MsgDuplicateUser     = "That username or email is already in use, try again!"
	MsgTaskPosted        = "New entry was successfully posted. Thanks."
	MsgTaskCompleted     = "The task was marked as complete."
	MsgTaskDeleted       = "The task was deleted."
	MsgUpdateForbidden   = "You can only update tasks that belong to you."
	MsgDeleteForbidden   = "You can only delete tasks that belong to you."
	MsgFormInvalid       = "Please correct the highlighted fields."
	MsgNotFound          = "Sorry. There's nothing here."
	MsgInternal          = "Something went terribly wrong."
	MsgElementNotPresent = "Element does not exist"
)
