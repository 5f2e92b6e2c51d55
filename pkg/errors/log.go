package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces and timestamps.
	Verbose bool
	// Out overrides the destination; nil means stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a CurveError.
func (h *LogHandler) HandleError(err *CurveError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[motion error] %s %s\n", err.Timestamp.Format("15:04:05.000"), err.Error())
		if err.Err != nil {
			fmt.Fprintf(w, "  cause: %T\n", err.Err)
		}
		return
	}
	fmt.Fprintf(w, "[motion error] %s\n", err.Error())
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[motion panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[motion panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
