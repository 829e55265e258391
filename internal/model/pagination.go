package model

import "mime/multipart"

// Page is the uniform paginated payload.
type Page struct {
	Items   interface{} `json:"items"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int64       `json:"total"`
}

// Upload carries a multipart file from the handler into a service without
// the service touching net/http.
type Upload struct {
	File   multipart.File
	Header *multipart.FileHeader
}
