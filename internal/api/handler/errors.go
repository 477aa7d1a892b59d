package handler

import (
	"net/http"

	"github.com/mcoot/santaworkshop/internal/api/apierr"
	"github.com/mcoot/santaworkshop/internal/api/request"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decode reads a validated JSON body, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := request.Decode(r, v); err != nil {
		WriteError(w, err)
		return false
	}
	return true
}
