package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wetee-dao/guildgate/internal/model"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a collection response
type CollectionResponse struct {
	Data  interface{}       `json:"data"`
	Count int               `json:"count"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{
		Data:  data,
		Links: links,
	})
}

// WriteCollection writes a collection response
func WriteCollection(w http.ResponseWriter, status int, data interface{}, count int, links map[string]string) {
	WriteJSON(w, status, CollectionResponse{
		Data:  data,
		Count: count,
		Links: links,
	})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// pathUint parses a numeric path segment, writing a 400 when it is not one
func pathUint(w http.ResponseWriter, r *http.Request, name string, bits int) (uint64, bool) {
	raw := r.PathValue(name)
	v, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		WriteError(w, model.NewBadRequestError(name+" must be a non-negative integer"))
		return 0, false
	}
	return v, true
}
