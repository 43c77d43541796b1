package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"orderdesk/pkg/shop"
)

// errorResponse is the wire shape of every failure.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// messageResponse confirms deletes and join-row changes.
type messageResponse struct {
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, kind, msg string) {
	respond(w, status, errorResponse{Error: errorDetail{Kind: kind, Message: msg}})
}

// fail maps repository errors onto the error taxonomy. Store failures are
// logged in full but reported to the caller without detail.
func fail(ctx context.Context, w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, shop.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", entity+" not found")
	case errors.Is(err, shop.ErrCustomerHasOrders):
		respondError(w, http.StatusConflict, "conflict",
			"customer still has orders; delete the dependent orders first")
	case errors.Is(err, shop.ErrBadReference):
		respondError(w, http.StatusConflict, "conflict",
			"referenced "+entity+" does not exist")
	default:
		log.Error(ctx, "store operation failed", "entity", entity, "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "something went wrong")
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
