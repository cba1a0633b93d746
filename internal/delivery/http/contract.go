package http

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"retail-demo/internal/models"
)

// ListContracts
// @Summary ListContracts
// @Description Lists contract files of the share, newest first. Types are inferred from file names
// @ID list-contracts
// @Produce json
// @Success 200 {object} dataResponse{data=[]models.Contract}
// @Failure 500 {object} errorResponse
// @Router /api/contracts [get]
func (h *Handler) ListContracts(c *gin.Context) {
	recs, src, err := h.svc.ListContracts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, recs, src)
}

// GetContract
// @Summary GetContract
// @ID get-contract
// @Produce json
// @Param name path string true "contract file name"
// @Success 200 {object} dataResponse{data=models.Contract}
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/contracts/{name} [get]
func (h *Handler) GetContract(c *gin.Context) {
	name, ok := pathParam(c, "name")
	if !ok {
		return
	}
	rec, src, err := h.svc.GetContract(c.Request.Context(), name)
	if err != nil {
		handleError(c, err)
		return
	}
	respondRead(c, rec, src)
}

// UploadContract
// @Summary UploadContract
// @Description Uploads a contract file to the share and triggers the contract function
// @ID upload-contract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "contract file"
// @Param contract_name formData string false "file name on the share"
// @Param contract_type formData string false "contract type, inferred from the name when empty"
// @Param contract_party formData string false "other party"
// @Param effective_date formData string false "YYYY-MM-DD"
// @Param expiry_date formData string false "YYYY-MM-DD"
// @Param contract_value formData number false "value"
// @Success 201 {object} dataResponse{data=models.Contract}
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/contracts [post]
func (h *Handler) UploadContract(c *gin.Context) {
	var in models.Contract
	if err := c.ShouldBind(&in); err != nil {
		rejectInput(c, "invalid form", err)
		return
	}
	fh, data, err := formFile(c, "file")
	if err != nil {
		rejectInput(c, "invalid file", err)
		return
	}
	var fileName string
	if fh != nil {
		fileName = fh.Filename
	}
	in.Content = data

	rec, w, err := h.svc.UploadContract(c.Request.Context(), in, fileName)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWrite(c, http.StatusCreated, rec, w)
}

// DownloadContract
// @Summary DownloadContract
// @ID download-contract
// @Produce octet-stream
// @Param name path string true "contract file name"
// @Success 200 {file} file
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/contracts/{name}/download [get]
func (h *Handler) DownloadContract(c *gin.Context) {
	name, ok := pathParam(c, "name")
	if !ok {
		return
	}
	data, src, err := h.svc.DownloadContract(c.Request.Context(), name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header(sourceHeader, string(src))
	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(name)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// DeleteContract
// @Summary DeleteContract
// @ID delete-contract
// @Produce json
// @Param name path string true "contract file name"
// @Success 200 {object} writeResponse
// @Failure 500 {object} errorResponse
// @Router /api/contracts/{name} [delete]
func (h *Handler) DeleteContract(c *gin.Context) {
	name, ok := pathParam(c, "name")
	if !ok {
		return
	}
	w, err := h.svc.DeleteContract(c.Request.Context(), name)
	if err != nil {
		handleError(c, err)
		return
	}
	respondDeleted(c, w)
}
