package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "retail-demo/docs"
	"retail-demo/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultMaxUpload = 32 << 20

type Handler struct {
	svc       service.Retail
	limiter   *rateLimiter
	maxUpload int64
}

type Option func(*Handler)

// WithRateLimit limits each client IP to rps requests per second on /api.
func WithRateLimit(rps float64, burst int) Option {
	return func(h *Handler) {
		if rps > 0 {
			h.limiter = newRateLimiter(rps, burst, 3*time.Minute)
		}
	}
}

func WithMaxUpload(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

func NewHandler(s service.Retail, opts ...Option) *Handler {
	h := &Handler{svc: s, maxUpload: defaultMaxUpload}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = h.maxUpload

	api := router.Group("/api")
	if h.limiter != nil {
		api.Use(h.limiter.middleware())
	}
	{
		customers := api.Group("/customers")
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		products := api.Group("/products")
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.limitUpload(), h.CreateProduct)
		products.PUT("/:id", h.limitUpload(), h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)

		orders := api.Group("/orders")
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)

		contracts := api.Group("/contracts")
		contracts.GET("", h.ListContracts)
		contracts.GET("/:name", h.GetContract)
		contracts.GET("/:name/download", h.DownloadContract)
		contracts.POST("", h.limitUpload(), h.UploadContract)
		contracts.DELETE("/:name", h.DeleteContract)

		api.POST("/uploads/payment-proof", h.limitUpload(), h.UploadPaymentProof)
		api.GET("/status", h.Status)
	}

	router.GET("/blobs/:container/*name", h.GetBlob)

	router.NoRoute(func(c *gin.Context) {
		newErrorResponse(c, http.StatusNotFound, "not found")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// limitUpload caps the request body at maxUpload bytes. Multipart forms are
// parsed up front so an oversized upload is rejected with 413 before any
// handler reads it.
func (h *Handler) limitUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			if err := c.Request.ParseMultipartForm(h.maxUpload); tooLarge(err) {
				newErrorResponse(c, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("upload exceeds %d bytes", h.maxUpload))
				return
			}
		}
		c.Next()
	}
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// formFile reads an optional multipart file. A missing file yields nil.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, []byte, error) {
	fh, err := c.FormFile(field)
	if err == http.ErrMissingFile || (err != nil && !strings.HasPrefix(c.ContentType(), "multipart/")) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return fh, data, nil
}

func pathParam(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing "+name)
		return "", false
	}
	return v, true
}
