package main

import (
	"net/http"

	"orderdesk/pkg/otel"
	"orderdesk/pkg/shop"
)

// customerRequest is the body of customer create and update calls. Phone
// may arrive as a JSON string or a bare number.
type customerRequest struct {
	Name  string           `json:"name"`
	Phone shop.PhoneNumber `json:"phone"`
}

// createCustomerHandler adds a new customer.
// @Summary Create customer
// @Accept json
// @Produce json
// @Param customer body customerRequest true "Customer"
// @Success 200 {object} shop.Customer
// @Failure 500 {object} errorResponse
// @Router /customer [post]
func createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createCustomerHandler")
	defer span.End()

	var req customerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	c, err := repo.CreateCustomer(ctx, shop.Customer{Name: req.Name, Phone: req.Phone})
	if err != nil {
		fail(ctx, w, err, "customer")
		return
	}
	respond(w, http.StatusOK, c)
}

// getCustomerHandler retrieves a customer by id.
// @Summary Get customer
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} shop.Customer
// @Failure 404 {object} errorResponse
// @Router /customers/{id} [get]
func getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCustomerHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid customer id")
		return
	}
	c, err := repo.GetCustomer(ctx, id)
	if err != nil {
		fail(ctx, w, err, "customer")
		return
	}
	respond(w, http.StatusOK, c)
}

// updateCustomerHandler overwrites every field of an existing customer.
// @Summary Update customer
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body customerRequest true "Customer"
// @Success 200 {object} shop.Customer
// @Failure 404 {object} errorResponse
// @Router /customers/{id} [put]
func updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateCustomerHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid customer id")
		return
	}
	var req customerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	c := shop.Customer{ID: id, Name: req.Name, Phone: req.Phone}
	if err := repo.UpdateCustomer(ctx, c); err != nil {
		fail(ctx, w, err, "customer")
		return
	}
	respond(w, http.StatusOK, c)
}

// deleteCustomerHandler removes a customer. The delete is refused with a
// conflict while any order still references the customer.
// @Summary Delete customer
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} messageResponse
// @Failure 409 {object} errorResponse
// @Router /customers/{id} [delete]
func deleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteCustomerHandler")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid customer id")
		return
	}
	if err := repo.DeleteCustomer(ctx, id); err != nil {
		fail(ctx, w, err, "customer")
		return
	}
	respond(w, http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}
