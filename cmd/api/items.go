package main

import (
	"net/http"

	"orderdesk/pkg/otel"
	"orderdesk/pkg/shop"
)

// itemRequest is the body of item create and update calls.
type itemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// createItemHandler adds a new item. Duplicate names are accepted here;
// only seed loading dedups items.
// @Summary Create item
// @Accept json
// @Produce json
// @Param item body itemRequest true "Item"
// @Success 200 {object} shop.Item
// @Failure 500 {object} errorResponse
// @Router /items [post]
func createItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createItemHandler")
	defer span.End()

	var req itemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	it, err := repo.CreateItem(ctx, shop.Item{Name: req.Name, Price: req.Price})
	if err != nil {
		fail(ctx, w, err, "item")
		return
	}
	respond(w, http.StatusOK, it)
}

// getItemHandler retrieves an item by id.
// @Summary Get item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} shop.Item
// @Failure 404 {object} errorResponse
// @Router /items/{id} [get]
func getItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getItemHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}
	it, err := repo.GetItem(ctx, id)
	if err != nil {
		fail(ctx, w, err, "item")
		return
	}
	respond(w, http.StatusOK, it)
}

// updateItemHandler overwrites every field of an existing item.
// @Summary Update item
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param item body itemRequest true "Item"
// @Success 200 {object} shop.Item
// @Failure 404 {object} errorResponse
// @Router /items/{id} [put]
func updateItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateItemHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}
	var req itemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	it := shop.Item{ID: id, Name: req.Name, Price: req.Price}
	if err := repo.UpdateItem(ctx, it); err != nil {
		fail(ctx, w, err, "item")
		return
	}
	respond(w, http.StatusOK, it)
}

// deleteItemHandler removes an item. Deleting an id that never existed
// still confirms; join rows referencing the item cascade away.
// @Summary Delete item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} messageResponse
// @Router /items/{id} [delete]
func deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteItemHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}
	if err := repo.DeleteItem(ctx, id); err != nil {
		fail(ctx, w, err, "item")
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Item " + shop.FormatID(id) + " deleted"})
}
