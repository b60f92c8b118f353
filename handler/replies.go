package handler

import (
	"errors"
	"net/http"
	"strings"

	"sneaker-fulfillment/internal/domain"
	"sneaker-fulfillment/internal/usecase"
)

const (
	replyInvalidSelection = "Please select a valid number from the list."
	replyNoSneakerData    = "Error: No sneaker data available."
	replyUnknownIntent    = "Sorry, I can't help with that request yet."
	replyBodyTooLarge     = "Error: request body too large"
)

func errorCode(err error) usecase.ErrorCode {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		return ucErr.Code
	}
	return usecase.ErrorInternal
}

// replyForError is the only place use case errors become user text.
func replyForError(err error) string {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return "Error: " + err.Error()
	}
	switch ucErr.Code {
	case usecase.ErrorInvalidSelection:
		return replyInvalidSelection
	case usecase.ErrorContextMissing:
		return replyNoSneakerData
	case usecase.ErrorUnknownIntent:
		return replyUnknownIntent
	}
	msg := strings.ReplaceAll(ucErr.Reason, "_", " ")
	if ucErr.Err != nil {
		msg += ": " + ucErr.Err.Error()
	}
	return "Error: " + msg
}

func malformedReply(err error) domain.WebhookResponse {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.WebhookResponse{FulfillmentText: replyBodyTooLarge}
	}
	return domain.WebhookResponse{FulfillmentText: "Error: invalid request body: " + err.Error()}
}
