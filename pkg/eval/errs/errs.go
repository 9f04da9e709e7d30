// Package errs contains the error taxonomy of the interpreter.
//
// Every user-triggerable runtime fault is an *Error carrying a Kind. A Kind
// knows the message and numeric code that a running program observes through
// the trap diagnostic cells.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one entry of the error taxonomy.
type Kind int

// Error kinds.
const (
	Internal Kind = iota
	Syntax
	UndefStatement
	OutOfData
	BadSubscript
	UndefFunction
	DivisionByZero
	IllegalQuantity
	LogOfNonPositive
	SqrtOfNegative
	Overflow
	TypeMismatch
	StringTooLong
	FormulaTooComplex
	ReturnWithoutGosub
	NextWithoutFor
	WendWithoutWhile
	PopWithoutGosub
	ResumeWithoutError
	CantContinue
	PathNotFound
	IOError
	FileNotOpen
	EndOfData
	GraphicsNotEnabled
	Break
)

var kindInfo = [...]struct {
	msg  string
	code int
}{
	Internal:           {"INTERNAL", 255},
	Syntax:             {"SYNTAX", 16},
	UndefStatement:     {"UNDEF'D STATEMENT", 90},
	OutOfData:          {"OUT OF DATA", 42},
	BadSubscript:       {"BAD SUBSCRIPT", 107},
	UndefFunction:      {"UNDEF'D FUNCTION", 224},
	DivisionByZero:     {"DIVISION BY ZERO", 133},
	IllegalQuantity:    {"ILLEGAL QUANTITY", 53},
	LogOfNonPositive:   {"ILLEGAL QUANTITY", 53},
	SqrtOfNegative:     {"ILLEGAL QUANTITY", 53},
	Overflow:           {"OVERFLOW", 69},
	TypeMismatch:       {"TYPE MISMATCH", 163},
	StringTooLong:      {"STRING TOO LONG", 176},
	FormulaTooComplex:  {"FORMULA TOO COMPLEX", 191},
	ReturnWithoutGosub: {"RETURN WITHOUT GOSUB", 22},
	NextWithoutFor:     {"NEXT WITHOUT FOR", 0},
	WendWithoutWhile:   {"WEND WITHOUT WHILE", 232},
	PopWithoutGosub:    {"POP WITHOUT GOSUB", 233},
	ResumeWithoutError: {"RESUME WITHOUT ERROR", 234},
	CantContinue:       {"CAN'T CONTINUE", 235},
	PathNotFound:       {"PATH NOT FOUND", 6},
	IOError:            {"I/O ERROR", 8},
	FileNotOpen:        {"FILE NOT OPEN", 18},
	EndOfData:          {"END OF DATA", 5},
	GraphicsNotEnabled: {"GRAPHICS NOT ENABLED", 236},
	Break:              {"BREAK", 255},
}

// String returns the message shown for the kind, like "DIVISION BY ZERO".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].msg
}

// Code returns the numeric code a trapped program reads from the diagnostic
// memory cell.
func (k Kind) Code() int {
	if k < 0 || int(k) >= len(kindInfo) {
		return 255
	}
	return kindInfo[k].code
}

// Error is a runtime fault of some Kind. Detail is optional and only used in
// log messages and the Go error string.
type Error struct {
	Kind   Kind
	Detail string
}

// New returns an *Error of the given kind.
func New(k Kind) *Error { return &Error{Kind: k} }

// Newf returns an *Error of the given kind with a formatted detail.
func Newf(k Kind, format string, args ...any) *Error {
	return &Error{k, fmt.Sprintf(format, args...)}
}

// Error returns the message of the kind, followed by the detail if present.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, errs.New(errs.Syntax)) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of err. Errors that carry a SyntaxKind method (parse
// errors) map to Syntax; all other foreign errors map to Internal. It returns
// -1 for a nil error.
func KindOf(err error) Kind {
	if err == nil {
		return -1
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var s interface{ SyntaxKind() }
	if errors.As(err, &s) {
		return Syntax
	}
	return Internal
}

// Message returns the Applesoft-style message of err, like "?SYNTAX ERROR".
// Kinds whose text already ends in ERROR do not get a second one.
func Message(err error) string {
	msg := KindOf(err).String()
	if !strings.HasSuffix(msg, "ERROR") {
		msg += " ERROR"
	}
	return "?" + msg
}
