package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"retail-demo/internal/models"
)

type paymentProofResponse struct {
	Url string `json:"url"`
	writeResponse
}

// UploadPaymentProof
// @Summary UploadPaymentProof
// @Description Uploads a proof of payment to the blob store
// @ID upload-payment-proof
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "proof of payment"
// @Param related_order_id formData string false "order id"
// @Param customer_name formData string false "customer name"
// @Success 201 {object} paymentProofResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/uploads/payment-proof [post]
func (h *Handler) UploadPaymentProof(c *gin.Context) {
	var in models.PaymentProof
	if err := c.ShouldBind(&in); err != nil {
		rejectInput(c, "invalid form", err)
		return
	}
	fh, data, err := formFile(c, "file")
	if err != nil {
		rejectInput(c, "invalid file", err)
		return
	}
	if fh != nil {
		in.FileName = fh.Filename
	}
	in.Content = data

	url, w, err := h.svc.UploadPaymentProof(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header(sourceHeader, string(w.Source))
	c.JSON(http.StatusCreated, paymentProofResponse{
		Url:           url,
		writeResponse: writeResponse{Id: w.Id, Source: w.Source, Notifications: w.Notifications},
	})
}

// GetBlob
// @Summary GetBlob
// @Description Serves a product image or payment proof
// @ID get-blob
// @Produce octet-stream
// @Param container path string true "container"
// @Param name path string true "blob name"
// @Success 200 {file} file
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /blobs/{container}/{name} [get]
func (h *Handler) GetBlob(c *gin.Context) {
	container := c.Param("container")
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		newErrorResponse(c, http.StatusNotFound, "not found")
		return
	}
	data, contentType, err := h.svc.DownloadBlob(c.Request.Context(), container, name)
	if err != nil {
		handleError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// Status
// @Summary Status
// @Description Probes the remote stores and reports the fallback store contents
// @ID status
// @Produce json
// @Success 200 {object} service.Status
// @Router /api/status [get]
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status(c.Request.Context()))
}
