package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-demo/internal/models"
)

// ListCustomers
// @Summary ListCustomers
// @Description Lists customers from the table store, or from the fallback store when the table store fails
// @ID list-customers
// @Produce json
// @Success 200 {object} dataResponse{data=[]models.Customer}
// @Failure 429,500 {object} errorResponse
// @Router /api/customers [get]
func (h *Handler) ListCustomers(c *gin.Context) {
	recs, src, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, recs, src)
}

// GetCustomer
// @Summary GetCustomer
// @ID get-customer
// @Produce json
// @Param id path string true "customer id"
// @Success 200 {object} dataResponse{data=models.Customer}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/customers/{id} [get]
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	rec, src, err := h.svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, rec, src)
}

// CreateCustomer
// @Summary CreateCustomer
// @Description Stores a customer and triggers the customer function
// @ID create-customer
// @Accept json
// @Produce json
// @Param input body models.Customer true "customer"
// @Success 201 {object} dataResponse{data=models.Customer}
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/customers [post]
func (h *Handler) CreateCustomer(c *gin.Context) {
	var in models.Customer
	if err := c.ShouldBind(&in); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	rec, w, err := h.svc.AddCustomer(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, rec, w)
}

// UpdateCustomer
// @Summary UpdateCustomer
// @ID update-customer
// @Accept json
// @Produce json
// @Param id path string true "customer id"
// @Param input body models.Customer true "customer"
// @Success 200 {object} dataResponse{data=models.Customer}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/customers/{id} [put]
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	var in models.Customer
	if err := c.ShouldBind(&in); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	in.Id = id
	rec, w, err := h.svc.UpdateCustomer(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, rec, w)
}

// DeleteCustomer
// @Summary DeleteCustomer
// @ID delete-customer
// @Produce json
// @Param id path string true "customer id"
// @Success 200 {object} writeResponse
// @Failure 500 {object} errorResponse
// @Router /api/customers/{id} [delete]
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	w, err := h.svc.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondDeleted(c, w)
}
