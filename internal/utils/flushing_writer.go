package utils

import (
	"io"
	"sync"
)

// flusher is implemented by buffered writers such as bufio.Writer.
type flusher interface {
	Flush() error
}

// FlushingWriter serializes writes and flushes buffered destinations after each one,
// so status messages interleave with streamed child output in the order they were produced.
type FlushingWriter struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewFlushingWriter wraps destination. Nil and already wrapped writers are returned unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	switch destination.(type) {
	case nil, *FlushingWriter:
		return destination
	default:
		return &FlushingWriter{destination: destination}
	}
}

// Write delegates to the destination and flushes it when it buffers.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	bytesWritten, writeError := writer.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if bufferedDestination, buffered := writer.destination.(flusher); buffered {
		return bytesWritten, bufferedDestination.Flush()
	}
	return bytesWritten, nil
}

// Unwrap returns the destination writer.
func (writer *FlushingWriter) Unwrap() io.Writer {
	return writer.destination
}
