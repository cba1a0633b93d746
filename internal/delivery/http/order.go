package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-demo/internal/models"
)

// ListOrders
// @Summary ListOrders
// @ID list-orders
// @Produce json
// @Success 200 {object} dataResponse{data=[]models.Order}
// @Failure 500 {object} errorResponse
// @Router /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	recs, src, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, recs, src)
}

// GetOrder
// @Summary GetOrder
// @ID get-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} dataResponse{data=models.Order}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	rec, src, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, rec, src)
}

// CreateOrder
// @Summary CreateOrder
// @Description Places an order and triggers the order function. Date, status and total are filled in when missing
// @ID create-order
// @Accept json
// @Produce json
// @Param input body models.Order true "order"
// @Success 201 {object} dataResponse{data=models.Order}
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var in models.Order
	if err := c.ShouldBindJSON(&in); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	rec, w, err := h.svc.AddOrder(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, rec, w)
}

// UpdateOrder
// @Summary UpdateOrder
// @ID update-order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body models.Order true "order"
// @Success 200 {object} dataResponse{data=models.Order}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	var in models.Order
	if err := c.ShouldBindJSON(&in); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	in.Id = id
	rec, w, err := h.svc.UpdateOrder(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, rec, w)
}

// DeleteOrder
// @Summary DeleteOrder
// @ID delete-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} writeResponse
// @Failure 500 {object} errorResponse
// @Router /api/orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	w, err := h.svc.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondDeleted(c, w)
}
