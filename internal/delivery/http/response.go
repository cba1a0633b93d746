package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/notify"
	"retail-demo/internal/service"
)

const sourceHeader = "X-Storage-Source"

type errorResponse struct {
	Message string `json:"message"`
}

type dataResponse struct {
	Data          interface{}       `json:"data"`
	Source        service.Source    `json:"source,omitempty"`
	Notifications []notify.Delivery `json:"notifications,omitempty"`
}

type writeResponse struct {
	Id            string            `json:"id"`
	Source        service.Source    `json:"source"`
	Notifications []notify.Delivery `json:"notifications,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	entry := logrus.WithFields(logrus.Fields{"status": statusCode, "path": c.Request.URL.Path})
	if statusCode >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// rejectInput answers a request whose body could not be read or bound.
func rejectInput(c *gin.Context, what string, err error) {
	if tooLarge(err) {
		newErrorResponse(c, http.StatusRequestEntityTooLarge, what+": "+err.Error())
		return
	}
	newErrorResponse(c, http.StatusBadRequest, what+": "+err.Error())
}

// handleError maps service errors onto status codes.
func handleError(c *gin.Context, err error) {
	switch {
	case tooLarge(err):
		newErrorResponse(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrValidation):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func respondRead(c *gin.Context, data interface{}, src service.Source) {
	c.Header(sourceHeader, string(src))
	c.JSON(http.StatusOK, dataResponse{Data: data, Source: src})
}

func respondWrite(c *gin.Context, code int, data interface{}, w service.Written) {
	c.Header(sourceHeader, string(w.Source))
	c.JSON(code, dataResponse{Data: data, Source: w.Source, Notifications: w.Notifications})
}

func respondDeleted(c *gin.Context, w service.Written) {
	c.Header(sourceHeader, string(w.Source))
	c.JSON(http.StatusOK, writeResponse{Id: w.Id, Source: w.Source, Notifications: w.Notifications})
}
