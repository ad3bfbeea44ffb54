package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CallKitErrorBadPayload          = "CALLKIT_BAD_PAYLOAD"
	CallKitErrorSessionNotFound     = "CALLKIT_SESSION_NOT_FOUND"
	CallKitErrorSessionExists       = "CALLKIT_SESSION_EXISTS"
	CallKitErrorAdapterFailed       = "CALLKIT_ADAPTER_FAILED"
	CallKitErrorPresentationFailed  = "CALLKIT_PRESENTATION_FAILED"
	CallKitErrorListenerUnavailable = "CALLKIT_LISTENER_UNAVAILABLE"
	CallKitErrorInternal            = "CALLKIT_INTERNAL_ERROR"
)

func callkitErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureCallKitErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "session") && strings.Contains(msg, "not found"):
		return newCallKitError(err.Error(), goerrors.CategoryNotFound, CallKitErrorSessionNotFound)
	case strings.Contains(msg, "session") && strings.Contains(msg, "already"):
		return newCallKitError(err.Error(), goerrors.CategoryConflict, CallKitErrorSessionExists)
	case strings.Contains(msg, "call ui"), strings.Contains(msg, "adapter"):
		return newCallKitError(err.Error(), goerrors.CategoryOperation, CallKitErrorAdapterFailed)
	case strings.Contains(msg, "banner"), strings.Contains(msg, "presentation"):
		return newCallKitError(err.Error(), goerrors.CategoryOperation, CallKitErrorPresentationFailed)
	case strings.Contains(msg, "payload"), strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newCallKitError(err.Error(), goerrors.CategoryBadInput, CallKitErrorBadPayload)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureCallKitErrorEnvelope(mapped)
}

func newCallKitError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureCallKitErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureCallKitErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = callkitHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultCallKitTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultCallKitTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return CallKitErrorBadPayload
	case goerrors.CategoryNotFound:
		return CallKitErrorSessionNotFound
	case goerrors.CategoryConflict:
		return CallKitErrorSessionExists
	case goerrors.CategoryOperation:
		return CallKitErrorAdapterFailed
	default:
		return CallKitErrorInternal
	}
}

func callkitHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
