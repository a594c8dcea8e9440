package helpers

import (
	"github.com/ztrue/tracerr"
)

// Error carries one or more stack-traced errors. The zero value (NilError)
// means success, so engine functions return it by value.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func (e *Error) IsNil() bool {
	return IsNil(e)
}

func (e *Error) HasError() bool {
	return !IsNil(e)
}

// ErrorRef accumulates errors across calls without copying the accumulated
// value when passed by value.
type ErrorRef struct {
	reference []Error
}

func (e *ErrorRef) Add(err Error) {
	if e.reference == nil {
		e.reference = []Error{err}
	} else {
		e.reference[0] = Join(e.reference[0], err)
	}
}

func (e *ErrorRef) NumErrors() int {
	if e.IsNil() {
		return 0
	}
	return e.reference[0].NumErrors()
}

func (e *ErrorRef) IsNil() bool {
	return e.reference == nil || IsNil(e.reference[0])
}

func (e *ErrorRef) HasError() bool {
	return !e.IsNil()
}

func (e *ErrorRef) Error() Error {
	if e.reference == nil {
		return NilError
	}
	return e.reference[0]
}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) Error() string {
	result := ""
	for i, err := range e.errs {
		if i > 0 {
			result += "\n"
		}
		result += Indent(tracerr.Sprint(err), ".  ")
	}
	return result
}

// Message is the text of the first error without its stack trace.
func (e Error) Message() string {
	if e.First() == nil {
		return ""
	}
	return e.First().Error()
}

func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSourceColor(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

func (e Error) NumErrors() int {
	if IsNil(e) {
		return 0
	}

	num := 0
	for _, err := range e.errs {
		if err != nil {
			num++
		}
	}
	return num
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	if traceableErr, ok := err.(Error); ok {
		return traceableErr
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}

	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}
