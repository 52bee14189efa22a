package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fitlog/fitlog/internal/exercise"
)

// Fixed response texts. Error bodies are plain text, which is what
// distinguishes them from success JSON payloads.
const (
	genericFailureMessage    = "Error! Something has gone wrong"
	listUsersFailureMessage  = "Something went wrong, please try again later."
	duplicateUsernameMessage = "Error! Username already exists."
	routeNotFoundMessage     = "not found"
)

type errorResponse struct {
	Status  int
	Message string
}

// requestErrorMessages maps validation error kinds to their fixed response
// text. Missing-field errors are formatted separately because the text names
// the field.
var requestErrorMessages = map[string]string{
	exercise.RequestErrorTypeInvalidInteger: "Error, duration must be an integer!",
	exercise.RequestErrorTypeInvalidDate:    "Error, invalid date provided!",
	exercise.RequestErrorTypeInvalidFrom:    "Error! Invalid from date provided!",
	exercise.RequestErrorTypeInvalidTo:      "Error! Invalid to date provided!",
	exercise.RequestErrorTypeInvalidLimit:   "Error! Invalid limit provided!",
	exercise.RequestErrorTypeRangeInverted:  "Error! From date cannot be after To date!",
	exercise.RequestErrorTypeMissingUserID:  "Error! User id not provided!",
}

// storageErrorResponses maps persistence error kinds to response code and
// text, the analogue of the legacy error-code lookup table.
var storageErrorResponses = map[string]errorResponse{
	exercise.StorageErrorTypeDuplicateKey: {http.StatusConflict, duplicateUsernameMessage},
	exercise.StorageErrorTypeNotFound:     {http.StatusNotFound, genericFailureMessage},
	exercise.StorageErrorTypeQueryFailed:  {http.StatusInternalServerError, genericFailureMessage},
}

// classify maps any error surfaced by the service to an HTTP status and the
// plain-text message the caller sees.
func classify(err error) (int, string) {
	var reqErr *exercise.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Type == exercise.RequestErrorTypeMissingField {
			return http.StatusBadRequest, fmt.Sprintf("Error, %s field cannot be empty!", reqErr.Field)
		}
		if msg, ok := requestErrorMessages[reqErr.Type]; ok {
			return http.StatusBadRequest, msg
		}
		return http.StatusBadRequest, genericFailureMessage
	}

	// schema-level validation reports the offending field's own message
	var valErr *exercise.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, valErr.Message
	}

	var storeErr *exercise.StorageError
	if errors.As(err, &storeErr) {
		if resp, ok := storageErrorResponses[storeErr.Type]; ok {
			return resp.Status, resp.Message
		}
	}

	return http.StatusInternalServerError, "Internal Server Error"
}
