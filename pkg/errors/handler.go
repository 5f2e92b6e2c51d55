package errors

import (
	stderrors "errors"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. It defaults to a
	// non-verbose LogHandler.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces the global error handler. Pass nil to restore the
// default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends err to the global handler, stamping it if needed.
func Report(err *CurveError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportErr reports any error. Errors that are not already a *CurveError
// are wrapped as KindUnknown under op.
func ReportErr(op string, err error) {
	if err == nil {
		return
	}
	var ce *CurveError
	if !stderrors.As(err, &ce) {
		ce = &CurveError{Op: op, Kind: KindUnknown, Err: err}
	}
	Report(ce)
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover reports a panic in progress and swallows it.
// Usage: defer errors.Recover("preview.Run")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanic(op, r))
	}
}

// RecoverTo reports a panic in progress and stores it in *errp so the
// deferring function returns it as an error.
// Usage: defer errors.RecoverTo("preview", &err)
func RecoverTo(op string, errp *error) {
	if r := recover(); r != nil {
		p := newPanic(op, r)
		ReportPanic(p)
		if errp != nil {
			*errp = p
		}
	}
}

func newPanic(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	}
}

// captureStack formats the call stack above skip frames, one function per
// entry.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
