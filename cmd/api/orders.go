package main

import (
	"net/http"

	"orderdesk/pkg/otel"
	"orderdesk/pkg/shop"
)

// orderRequest is the body of order create and update calls. The id field
// is accepted for compatibility and ignored; the timestamp is always
// assigned server-side.
type orderRequest struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Notes      string `json:"notes"`
}

// orderItemRequest names the item to link to an order.
type orderItemRequest struct {
	ItemID int64 `json:"item_id"`
}

// createOrderHandler creates an order stamped with the current server
// time. The path id and any client-supplied id or timestamp are ignored.
// @Summary Create order
// @Accept json
// @Produce json
// @Param id path int true "Ignored"
// @Param order body orderRequest true "Order"
// @Success 200 {object} shop.Order
// @Failure 409 {object} errorResponse
// @Router /orders/{id} [post]
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req orderRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	o := shop.Order{
		Timestamp:  now().Unix(),
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
	}
	o, err := repo.CreateOrder(ctx, o)
	if err != nil {
		fail(ctx, w, err, "customer")
		return
	}
	respond(w, http.StatusOK, o)
}

// getOrderHandler retrieves an order by id.
// @Summary Get order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} shop.Order
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	o, err := repo.GetOrder(ctx, id)
	if err != nil {
		fail(ctx, w, err, "order")
		return
	}
	respond(w, http.StatusOK, o)
}

// updateOrderHandler overwrites an existing order and restamps its
// timestamp to the time of the update.
// @Summary Update order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body orderRequest true "Order"
// @Success 200 {object} shop.Order
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [put]
func updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateOrderHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	var req orderRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	o := shop.Order{
		ID:         id,
		Timestamp:  now().Unix(),
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
	}
	if err := repo.UpdateOrder(ctx, o); err != nil {
		fail(ctx, w, err, "order")
		return
	}
	respond(w, http.StatusOK, o)
}

// deleteOrderHandler removes an order; its join rows cascade away.
// Deleting an id that never existed still confirms.
// @Summary Delete order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} messageResponse
// @Router /orders/{id} [delete]
func deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	if err := repo.DeleteOrder(ctx, id); err != nil {
		fail(ctx, w, err, "order")
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Order " + shop.FormatID(id) + " deleted"})
}

// addOrderItemHandler links an item to an order. Repeating the call adds
// another unit of the same item.
// @Summary Add item to order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param link body orderItemRequest true "Item reference"
// @Success 200 {object} messageResponse
// @Failure 409 {object} errorResponse
// @Router /orders/{id}/items [post]
func addOrderItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addOrderItemHandler")
	defer span.End()

	orderID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	var req orderItemRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := repo.AddOrderItem(ctx, orderID, req.ItemID); err != nil {
		fail(ctx, w, err, "order or item")
		return
	}
	respond(w, http.StatusOK, messageResponse{
		Message: "Item " + shop.FormatID(req.ItemID) + " added to order " + shop.FormatID(orderID),
	})
}

// listOrderItemsHandler returns the items on an order, one element per
// join row, so repeated items show up once per unit.
// @Summary List order items
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} shop.Item
// @Failure 404 {object} errorResponse
// @Router /orders/{id}/items [get]
func listOrderItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrderItemsHandler")
	defer span.End()

	orderID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	items, err := repo.ListOrderItems(ctx, orderID)
	if err != nil {
		fail(ctx, w, err, "order")
		return
	}
	respond(w, http.StatusOK, items)
}

// removeOrderItemHandler removes one unit of an item from an order.
// @Summary Remove item from order
// @Produce json
// @Param id path int true "Order ID"
// @Param itemID path int true "Item ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{id}/items/{itemID} [delete]
func removeOrderItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeOrderItemHandler")
	defer span.End()

	orderID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}
	if err := repo.RemoveOrderItem(ctx, orderID, itemID); err != nil {
		fail(ctx, w, err, "order item")
		return
	}
	respond(w, http.StatusOK, messageResponse{
		Message: "Item " + shop.FormatID(itemID) + " removed from order " + shop.FormatID(orderID),
	})
}
