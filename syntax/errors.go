package syntax

import "fmt"

type ErrorKind int

const (
	// CannotParse is raised for input that is not a sentence of the language.
	CannotParse ErrorKind = iota + 1
	// SyntaxNotSupported is raised for well-formed input the evaluator has no
	// meaning for, such as assigning to a literal.
	SyntaxNotSupported
)

func (k ErrorKind) String() string {
	switch k {
	case CannotParse:
		return "Cannot parse"
	case SyntaxNotSupported:
		return "Syntax not supported"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type Error struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
}

var (
	ErrCannotParse        = &Error{Kind: CannotParse}
	ErrSyntaxNotSupported = &Error{Kind: SyntaxNotSupported}
)

func (err *Error) Error() string {
	if err.Msg == "" {
		return err.Kind.String()
	}
	return fmt.Sprintf("%s: %s at %s", err.Kind, err.Msg, err.Pos)
}

func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == err.Kind
}

func errorf(kind ErrorKind, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
