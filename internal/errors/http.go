package errors

import "net/http"

// HTTPStatus maps domain codes to HTTP status codes for the JSON transport.
func HTTPStatus(code Code) int {
	switch code {
	case CodeMatchNotFound:
		return http.StatusNotFound
	case CodeMatchStateConflict, CodeMatchAlreadyExists:
		return http.StatusConflict
	case CodeValidation, CodeSnapshotVersionMismatch, CodeSnapshotChecksumMismatch:
		return http.StatusBadRequest
	case CodeCatalogConfiguration, CodeInternal, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
