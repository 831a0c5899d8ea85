package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Subtask  func(SubtaskArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	SubType  func(SubTypeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeSubtask:
		if handlers.Subtask == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Subtask(*cmd.Subtask)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Category(*cmd.Category)
	case TypeSubType:
		if handlers.SubType == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.SubType(*cmd.SubType)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
