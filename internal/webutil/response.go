package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
)

// Every response uses the {status, message?, data?} envelope.
type envelope struct {
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":false,"message":"Server Error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Success writes {status:true, message}.
func Success(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusOK, envelope{Status: true, Message: message})
}

// SuccessData writes {status:true, data}.
func SuccessData(w http.ResponseWriter, data interface{}) {
	RespondJSON(w, http.StatusOK, envelope{Status: true, Data: data})
}

// FailValidation writes a 400 with the field->messages map as the message.
func FailValidation(w http.ResponseWriter, errs FieldErrors) {
	RespondJSON(w, http.StatusBadRequest, envelope{Status: false, Message: errs})
}

// FailMessage writes {status:false, message} with the given code.
func FailMessage(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, envelope{Status: false, Message: message})
}

// HandleError maps service errors onto the envelope. AppErrors that carry a
// field name render as a single-field validation map, matching the shape of
// declarative validation failures.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, model.ErrInvalidInput) && appErr.Field != "":
			FailValidation(w, FieldErrors{appErr.Field: {appErr.Message}})
		case errors.Is(err, model.ErrInvalidInput):
			FailMessage(w, http.StatusBadRequest, appErr.Message)
		case errors.Is(err, model.ErrNotFound):
			FailMessage(w, http.StatusNotFound, appErr.Message)
		case errors.Is(err, model.ErrUnauthorized):
			FailMessage(w, http.StatusUnauthorized, appErr.Message)
		case errors.Is(err, model.ErrWrongCredentials):
			FailMessage(w, http.StatusUnprocessableEntity, appErr.Message)
		case errors.Is(err, model.ErrConflict):
			FailMessage(w, http.StatusConflict, appErr.Message)
		default:
			logger.Error("Unhandled application error", slog.Any("error", err))
			FailMessage(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		FailMessage(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, model.ErrInvalidInput):
		FailMessage(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, model.ErrUnauthorized):
		FailMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, model.ErrWrongCredentials):
		FailMessage(w, http.StatusUnprocessableEntity, "Wrong Email Or Password")
	case errors.Is(err, model.ErrConflict):
		FailMessage(w, http.StatusConflict, "Conflict")
	default:
		logger.Error("Unhandled error", slog.Any("error", err))
		FailMessage(w, http.StatusInternalServerError, "Server Error")
	}
}
