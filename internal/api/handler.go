package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/prefs"
	"backoffice/internal/service"
	"backoffice/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	inventory   *service.InventoryService
	sales       *service.SalesService
	settings    *service.SettingsService
	reports     *service.ReportService
	preferences *prefs.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	inventory *service.InventoryService,
	sales *service.SalesService,
	settings *service.SettingsService,
	reports *service.ReportService,
	preferences *prefs.Service,
) *Handler {
	return &Handler{
		inventory:   inventory,
		sales:       sales,
		settings:    settings,
		reports:     reports,
		preferences: preferences,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.GET("/products/:id", h.getProduct)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id/status", h.updateOrderStatus)
		v1.DELETE("/orders/:id", h.deleteOrder)

		v1.GET("/settings", h.getSettings)
		v1.PATCH("/settings", h.updateSettings)

		v1.GET("/preferences", h.getPreferences)
		v1.PUT("/preferences", h.updatePreferences)
		v1.POST("/preferences/theme/toggle", h.toggleTheme)

		v1.GET("/reports/overview", h.reportOverview)
		v1.GET("/reports/dashboard", h.reportDashboard)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   msg,
		"details": err.Error(),
	})
}

// listProducts handles product search
func (h *Handler) listProducts(c *gin.Context) {
	products := h.inventory.ListProducts(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"total":    len(products),
		"products": products,
	})
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, err := h.inventory.AddProduct(c.Request.Context(), &req)
	if err != nil {
		badRequest(c, "Invalid product", err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.inventory.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// updateProduct handles partial product updates. Unknown ids answer 204.
func (h *Handler) updateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, found, err := h.inventory.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		badRequest(c, "Invalid product", err)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct handles product deletion
func (h *Handler) deleteProduct(c *gin.Context) {
	h.inventory.DeleteProduct(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// listOrders handles order search
func (h *Handler) listOrders(c *gin.Context) {
	orders := h.sales.ListOrders(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"total":  len(orders),
		"orders": orders,
	})
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	order, err := h.sales.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		badRequest(c, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.sales.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// updateOrderStatus handles status changes. Unknown ids answer 204.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	order, found, err := h.sales.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		badRequest(c, "Invalid status", err)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, order)
}

// deleteOrder handles order deletion
func (h *Handler) deleteOrder(c *gin.Context) {
	h.sales.DeleteOrder(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.GetSettings(c.Request.Context()))
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	c.JSON(http.StatusOK, h.settings.UpdateSettings(c.Request.Context(), &req))
}

// preferencesRequest carries the preferences to change; empty fields are kept
type preferencesRequest struct {
	Theme    prefs.Theme    `json:"theme,omitempty"`
	Language prefs.Language `json:"language,omitempty"`
}

func (h *Handler) getPreferences(c *gin.Context) {
	p, err := h.preferences.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read preferences",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) updatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	err := h.preferences.Set(c.Request.Context(), prefs.Preferences{
		Theme:    req.Theme,
		Language: req.Language,
	})
	if err != nil {
		h.preferenceError(c, err)
		return
	}

	h.getPreferences(c)
}

func (h *Handler) toggleTheme(c *gin.Context) {
	theme, err := h.preferences.ToggleTheme(c.Request.Context())
	if err != nil {
		h.preferenceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *Handler) preferenceError(c *gin.Context, err error) {
	if errors.Is(err, prefs.ErrInvalidTheme) || errors.Is(err, prefs.ErrInvalidLanguage) {
		badRequest(c, "Invalid preference", err)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to store preferences",
		"details": err.Error(),
	})
}

func (h *Handler) reportOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Overview(c.Request.Context()))
}

func (h *Handler) reportDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Dashboard(c.Request.Context()))
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
