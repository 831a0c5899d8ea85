package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSubtask  Type = "subtask"
	TypeCategory Type = "category"
	TypeSubType  Type = "type"
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

type AddArgs struct {
	Text string
}

type SubtaskArgs struct {
	Text string
}

type CategoryArgs struct {
	Name string
}

// SubTypeArgs selects a subcategory tab. All clears the selection.
type SubTypeArgs struct {
	Name string
	All  bool
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Subtask  *SubtaskArgs
	Category *CategoryArgs
	SubType  *SubTypeArgs
}

var aliases = map[string]Type{
	"a":   TypeAdd,
	"sub": TypeSubtask,
	"cat": TypeCategory,
	"tab": TypeCategory,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	if alias, ok := aliases[head]; ok {
		head = string(alias)
	}

	switch Type(head) {
	case TypeAdd:
		text, err := joinText(args, "add requires task text")
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: text}}, nil
	case TypeSubtask:
		text, err := joinText(args, "subtask requires text")
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeSubtask, Raw: input, Subtask: &SubtaskArgs{Text: text}}, nil
	case TypeCategory:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires one name"}
		}
		return Command{Type: TypeCategory, Raw: input, Category: &CategoryArgs{Name: args[0]}}, nil
	case TypeSubType:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "type requires one name"}
		}
		return Command{Type: TypeSubType, Raw: input, SubType: &SubTypeArgs{Name: args[0], All: strings.EqualFold(args[0], "all")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func joinText(args []string, msg string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
	}
	return text, nil
}
