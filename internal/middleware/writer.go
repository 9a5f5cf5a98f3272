package middleware

import "net/http"

// StatusRecorder wraps http.ResponseWriter to capture the status code and body size
type StatusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

// Record wraps w, reusing an existing recorder further up the chain
func Record(w http.ResponseWriter) *StatusRecorder {
	if rec, ok := w.(*StatusRecorder); ok {
		return rec
	}
	return &StatusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *StatusRecorder) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *StatusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Status returns the captured status code
func (rw *StatusRecorder) Status() int { return rw.status }

// Size returns the number of body bytes written
func (rw *StatusRecorder) Size() int { return rw.size }

// Unwrap exposes the underlying writer to http.ResponseController
func (rw *StatusRecorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }
