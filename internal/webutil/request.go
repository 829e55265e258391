package webutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ArmanAleqyan/langtrio/internal/model"
)

// DecodeJSONBody decodes a JSON request body into dst.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}

// FormUint reads a numeric form/query value. ok is false only when the value
// is present but not a number; an absent value yields (0, true) so that the
// required rule reports it instead.
func FormUint(r *http.Request, name string) (uint, bool) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// FormInt is FormUint for signed values, returned as a pointer so absent and
// zero stay distinguishable.
func FormInt(r *http.Request, name string) (*int, bool) {
	raw := r.FormValue(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// QueryUintPtr reads an optional uint query filter.
func QueryUintPtr(r *http.Request, name string) *uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// QueryPage reads the page number, defaulting to 1.
func QueryPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// FormUpload pulls an optional multipart file field. A missing field is not
// an error; any other failure is.
func FormUpload(r *http.Request, name string) (*model.Upload, error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	return &model.Upload{File: file, Header: header}, nil
}
