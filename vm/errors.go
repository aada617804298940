package vm

import "fmt"

type ErrorKind int

const (
	DivisionByZero ErrorKind = iota + 1
	Undefined
	AlreadyDefined
	NotMutable
	TypeMismatch
	NonAllocatedCell
	NonInitializedValue
	UseAfterFree
	MovedValue
	CannotMoveOwnedValue
	CannotFreeOwnedValue
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "DivisionByZero"
	case Undefined:
		return "Undefined"
	case AlreadyDefined:
		return "AlreadyDefined"
	case NotMutable:
		return "NotMutable"
	case TypeMismatch:
		return "TypeMismatch"
	case NonAllocatedCell:
		return "NonAllocatedCell"
	case NonInitializedValue:
		return "NonInitializedValue"
	case UseAfterFree:
		return "UseAfterFree"
	case MovedValue:
		return "MovedValue"
	case CannotMoveOwnedValue:
		return "CannotMoveOwnedValue"
	case CannotFreeOwnedValue:
		return "CannotFreeOwnedValue"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EvalError is the single error type produced by evaluation. Which of the
// optional fields are meaningful depends on Kind:
//
//	DivisionByZero       Expr is the zero divisor
//	Undefined            ID
//	AlreadyDefined       ID
//	TypeMismatch         Expr, Expected, Found (NoType when nothing was found)
//	everything else      Expr once the evaluator knows it, ID for moved bindings
type EvalError struct {
	Kind     ErrorKind
	Expr     Expr
	ID       Identifier
	Expected Type
	Found    Type
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrDivisionByZero       = &EvalError{Kind: DivisionByZero}
	ErrUndefined            = &EvalError{Kind: Undefined}
	ErrAlreadyDefined       = &EvalError{Kind: AlreadyDefined}
	ErrNotMutable           = &EvalError{Kind: NotMutable}
	ErrTypeMismatch         = &EvalError{Kind: TypeMismatch}
	ErrNonAllocatedCell     = &EvalError{Kind: NonAllocatedCell}
	ErrNonInitializedValue  = &EvalError{Kind: NonInitializedValue}
	ErrUseAfterFree         = &EvalError{Kind: UseAfterFree}
	ErrMovedValue           = &EvalError{Kind: MovedValue}
	ErrCannotMoveOwnedValue = &EvalError{Kind: CannotMoveOwnedValue}
	ErrCannotFreeOwnedValue = &EvalError{Kind: CannotFreeOwnedValue}
)

func NewError(kind ErrorKind) *EvalError {
	return &EvalError{Kind: kind}
}

func NewUndefined(id Identifier) *EvalError {
	return &EvalError{Kind: Undefined, ID: id}
}

func NewAlreadyDefined(id Identifier) *EvalError {
	return &EvalError{Kind: AlreadyDefined, ID: id}
}

func NewTypeMismatch(e Expr, expected, found Type) *EvalError {
	return &EvalError{Kind: TypeMismatch, Expr: e, Expected: expected, Found: found}
}

func (err *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == err.Kind
}

// WithExpr attaches e to an error that does not name an expression yet.
// Errors that already carry one, and kinds whose subject is an identifier,
// are returned unchanged.
func (err *EvalError) WithExpr(e Expr) *EvalError {
	if err.Expr != nil {
		return err
	}
	switch err.Kind {
	case Undefined, AlreadyDefined:
		return err
	}
	out := *err
	out.Expr = e
	return &out
}

func (err *EvalError) Error() string {
	switch err.Kind {
	case DivisionByZero:
		return fmt.Sprintf("Division by zero, `%s` evaluates to 0", err.subject("divisor"))
	case Undefined:
		return fmt.Sprintf("Undefined identifier `%s`.", err.ID)
	case AlreadyDefined:
		return fmt.Sprintf("Identifier `%s` already defined.", err.ID)
	case NotMutable:
		return fmt.Sprintf("Cell %sis not mutable.", err.located("at"))
	case TypeMismatch:
		msg := "Type mismatch"
		if err.Expr != nil {
			msg += fmt.Sprintf(" in expression `%s`", err.Expr)
		}
		msg += fmt.Sprintf(". Expected: %s.", err.Expected)
		if err.Found != NoType {
			msg += fmt.Sprintf(" Found: %s", err.Found)
		}
		return msg
	case NonAllocatedCell:
		return fmt.Sprintf("Cell %sis not allocated.", err.located("at"))
	case NonInitializedValue:
		return fmt.Sprintf("Value %sis not initialized.", err.located("in"))
	case UseAfterFree:
		if s := err.subject(""); s != "" {
			return fmt.Sprintf("`%s` is a use after free.", s)
		}
		return "use after free."
	case MovedValue:
		if s := err.subject(""); s != "" {
			return fmt.Sprintf("`%s` has been moved", s)
		}
		return "value has been moved"
	case CannotMoveOwnedValue:
		if s := err.subject(""); s != "" {
			return fmt.Sprintf("cannot move `%s`, owned value with move semantics", s)
		}
		return "cannot move this value, owned value with move semantics"
	case CannotFreeOwnedValue:
		if s := err.subject(""); s != "" {
			return fmt.Sprintf("cannot free `%s`, owned value", s)
		}
		return "cannot free this value, owned value"
	}
	return err.Kind.String()
}

func (err *EvalError) subject(fallback string) string {
	if err.Expr != nil {
		return err.Expr.String()
	}
	if !err.ID.IsZero() {
		return err.ID.String()
	}
	return fallback
}

func (err *EvalError) located(prep string) string {
	if s := err.subject(""); s != "" {
		return fmt.Sprintf("%s `%s` ", prep, s)
	}
	return ""
}
