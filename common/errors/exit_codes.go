package errors

type ExitCode int

const (
	SuccessExitCode ExitCode = 0

	// Failures reported by the scheduler core
	InvalidArgumentExitCode = 10
	AlreadyExistsExitCode   = 11
	NotFoundExitCode        = 12
	NoSuitablePlanExitCode  = 13

	// Failures of the command line driver itself
	BadScriptExitCode = 70
	ConfigExitCode    = 78

	UnknownExitCode = 1
)

// ExitCodeError attaches an explicit exit code to a failure that has no Kind,
// like an unreadable script or a bad configuration.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewExitCodeError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return SuccessExitCode
	}
	return e.code
}

func (e *ExitCodeError) Cause() error {
	return e.error
}

// ExitCodeFor returns the code of the first ExitCodeError wrapped in err, otherwise it maps
// the kind of err to the exit code reported by command line tools.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return SuccessExitCode
	}
	for e := err; e != nil; {
		if ece, ok := e.(*ExitCodeError); ok {
			return ece.code
		}
		cause, ok := e.(interface{ Cause() error })
		if !ok {
			break
		}
		e = cause.Cause()
	}
	switch KindOf(err) {
	case InvalidArgument:
		return InvalidArgumentExitCode
	case AlreadyExists:
		return AlreadyExistsExitCode
	case NotFound:
		return NotFoundExitCode
	case NoSuitablePlan:
		return NoSuitablePlanExitCode
	default:
		return UnknownExitCode
	}
}
