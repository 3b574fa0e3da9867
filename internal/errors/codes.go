package errors

import "net/http"

// ErrorCode identifies one of the spec's error kinds.
type ErrorCode string

const (
	// EmptyAudio is returned when conditioning receives zero samples.
	EmptyAudio ErrorCode = "EMPTY_AUDIO"
	// DecodeFailure is returned when the uploaded payload is not a valid WAV file.
	DecodeFailure ErrorCode = "DECODE_FAILURE"
	// NotReady is returned when a query arrives before any snapshot has been loaded.
	NotReady ErrorCode = "NOT_READY"
	// SnapshotCorrupt is returned when a snapshot fails to decode at startup.
	SnapshotCorrupt ErrorCode = "SNAPSHOT_CORRUPT"
	// InternalDSPError covers unexpected failures inside the extraction pipeline.
	InternalDSPError ErrorCode = "INTERNAL_DSP_ERROR"
	// TempFileIO covers failures writing or cleaning up the uploaded temp file.
	TempFileIO ErrorCode = "TEMP_FILE_IO"
)

// StatusCodeMap maps each ErrorCode to the HTTP status the handler surfaces.
var StatusCodeMap = map[ErrorCode]int{
	EmptyAudio:        http.StatusBadRequest,
	DecodeFailure:     http.StatusBadRequest,
	NotReady:          http.StatusInternalServerError,
	SnapshotCorrupt:   http.StatusInternalServerError,
	InternalDSPError:  http.StatusInternalServerError,
	TempFileIO:        http.StatusInternalServerError,
}

// StatusCode returns the HTTP status code for this error code.
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
