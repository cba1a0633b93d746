package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-demo/internal/models"
)

func (h *Handler) bindProduct(c *gin.Context) (models.Product, *models.Image, bool) {
	var in models.Product
	if err := c.ShouldBind(&in); err != nil {
		rejectInput(c, "invalid body", err)
		return models.Product{}, nil, false
	}
	fh, data, err := formFile(c, "image")
	if err != nil {
		rejectInput(c, "invalid image", err)
		return models.Product{}, nil, false
	}
	var img *models.Image
	if fh != nil {
		img = &models.Image{FileName: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}
	}
	return in, img, true
}

// ListProducts
// @Summary ListProducts
// @ID list-products
// @Produce json
// @Success 200 {object} dataResponse{data=[]models.Product}
// @Failure 500 {object} errorResponse
// @Router /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	recs, src, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, recs, src)
}

// GetProduct
// @Summary GetProduct
// @ID get-product
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} dataResponse{data=models.Product}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	rec, src, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, rec, src)
}

// CreateProduct
// @Summary CreateProduct
// @Description Stores a product. An optional image is uploaded to the blob store and triggers the image function
// @ID create-product
// @Accept multipart/form-data
// @Produce json
// @Param product_name formData string true "name"
// @Param description formData string true "description"
// @Param price formData number true "price"
// @Param stock_available formData integer true "stock"
// @Param image formData file false "product image"
// @Success 201 {object} dataResponse{data=models.Product}
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	in, img, ok := h.bindProduct(c)
	if !ok {
		return
	}
	rec, w, err := h.svc.AddProduct(c.Request.Context(), in, img)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, rec, w)
}

// UpdateProduct
// @Summary UpdateProduct
// @Description Updates a product. The stored image is kept unless a new one is uploaded
// @ID update-product
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "product id"
// @Param product_name formData string true "name"
// @Param description formData string true "description"
// @Param price formData number true "price"
// @Param stock_available formData integer true "stock"
// @Param image formData file false "product image"
// @Success 200 {object} dataResponse{data=models.Product}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	in, img, ok := h.bindProduct(c)
	if !ok {
		return
	}
	in.Id = id
	rec, w, err := h.svc.UpdateProduct(c.Request.Context(), in, img)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusOK, rec, w)
}

// DeleteProduct
// @Summary DeleteProduct
// @Description Deletes a product and its image blob
// @ID delete-product
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} writeResponse
// @Failure 500 {object} errorResponse
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}
	w, err := h.svc.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respondDeleted(c, w)
}
