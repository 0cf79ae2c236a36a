package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Complete func(CompleteArgs) (Result, error)
	Activity func() (Result, error)
	Notify   func(NotifyArgs) (Result, error)
	Window   func(WindowArgs) (Result, error)
	Max      func(MaxArgs) (Result, error)
	Test     func() (Result, error)
	Status   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeComplete:
		if handlers.Complete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "complete handler not configured"}
		}
		return handlers.Complete(*cmd.Complete)
	case TypeActivity:
		if handlers.Activity == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "activity handler not configured"}
		}
		return handlers.Activity()
	case TypeNotify:
		if handlers.Notify == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "notify handler not configured"}
		}
		return handlers.Notify(*cmd.Notify)
	case TypeWindow:
		if handlers.Window == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "window handler not configured"}
		}
		return handlers.Window(*cmd.Window)
	case TypeMax:
		if handlers.Max == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "max handler not configured"}
		}
		return handlers.Max(*cmd.Max)
	case TypeTest:
		if handlers.Test == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "test handler not configured"}
		}
		return handlers.Test()
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "status handler not configured"}
		}
		return handlers.Status()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
