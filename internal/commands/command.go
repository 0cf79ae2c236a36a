package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeComplete Type = "complete"
	TypeActivity Type = "activity"
	TypeNotify   Type = "notify"
	TypeWindow   Type = "window"
	TypeMax      Type = "max"
	TypeTest     Type = "test"
	TypeStatus   Type = "status"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type CompleteArgs struct {
	HabitID string
}

type NotifyArgs struct {
	Enabled bool
}

type WindowArgs struct {
	StartHour int
	EndHour   int
}

type MaxArgs struct {
	Limit int
}

type Command struct {
	Type     Type
	Raw      string
	Complete *CompleteArgs
	Notify   *NotifyArgs
	Window   *WindowArgs
	Max      *MaxArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeComplete:
		return parseComplete(input, args)
	case TypeActivity:
		return Command{Type: TypeActivity, Raw: input}, nil
	case TypeNotify:
		return parseNotify(input, args)
	case TypeWindow:
		return parseWindow(input, args)
	case TypeMax:
		return parseMax(input, args)
	case TypeTest:
		return Command{Type: TypeTest, Raw: input}, nil
	case TypeStatus:
		return Command{Type: TypeStatus, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseComplete(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "complete requires a habit id"}
	}
	id := strings.TrimSpace(strings.Join(args, " "))
	if id == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "complete requires a habit id"}
	}
	return Command{Type: TypeComplete, Raw: raw, Complete: &CompleteArgs{HabitID: id}}, nil
}

func parseNotify(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "notify requires on or off"}
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Enabled: true}}, nil
	case "off", "false", "0":
		return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Enabled: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("notify expects on or off, got %s", args[0])}
	}
}

func parseWindow(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "window requires start and end hours"}
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("window start is not an hour: %s", args[0])}
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("window end is not an hour: %s", args[1])}
	}
	return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{StartHour: start, EndHour: end}}, nil
}

func parseMax(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "max requires a daily limit"}
	}
	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("max limit is not a number: %s", args[0])}
	}
	return Command{Type: TypeMax, Raw: raw, Max: &MaxArgs{Limit: limit}}, nil
}
