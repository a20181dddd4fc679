package gateway

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation = "VALIDATION_FAILED"
	codeFetch      = "FETCH_FAILED"
	codeDecode     = "DECODE_FAILED"
)

// User-facing messages; the cause goes to the log.
const (
	msgNoFile       = "No file uploaded"
	msgTooLarge     = "File too large"
	msgBadBody      = "Invalid request body"
	msgExcelFailed  = "Failed to parse Excel file"
	msgGitHubFailed = "Failed to parse GitHub content"
)

func validationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid import request").
		WithTextCode(codeValidation)
}

func fetchError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "fetch failed").
		WithTextCode(codeFetch)
}

func decodeError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "spreadsheet could not be decoded").
		WithTextCode(codeDecode)
}

// remoteError rebuilds the taxonomy from a gateway error response, keeping
// the server's message.
func remoteError(status int, message string) error {
	if status == http.StatusBadRequest {
		return goerrors.Wrap(errors.New(message), goerrors.CategoryValidation, message).
			WithTextCode(codeValidation)
	}
	return goerrors.Wrap(errors.New(message), goerrors.CategoryExternal, message).
		WithTextCode(codeFetch)
}

// statusFor maps the error taxonomy onto HTTP: malformed input is the
// client's fault, everything else is a processing failure.
func statusFor(err error) int {
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
