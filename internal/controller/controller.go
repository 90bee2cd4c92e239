package controller

import (
	"errors"
	"net/http"

	"order-tracking-service/internal/repository"
	"order-tracking-service/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *service.OrderTrackingService
}

func NewOrderController(s *service.OrderTrackingService) *OrderController {
	return &OrderController{Service: s}
}

// GET /orders/:orderId
func (ctl *OrderController) GetOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	res, err := ctl.Service.GetOrderStatus(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /orders/:orderId/history — pedido + timeline + estadísticas
func (ctl *OrderController) GetOrderHistory(c *gin.Context) {
	orderID := c.Param("orderId")

	res, err := ctl.Service.GetOrderHistory(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /customers/:customerId/orders
func (ctl *OrderController) GetCustomerOrders(c *gin.Context) {
	customerID := c.Param("customerId")

	res, err := ctl.Service.GetCustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /dashboard/orders?status=<opcional>
func (ctl *OrderController) GetDashboardOrders(c *gin.Context) {
	statusFilter := c.Query("status")

	res, err := ctl.Service.GetDashboardOrders(c.Request.Context(), statusFilter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// respondError mapea la taxonomía de errores a códigos HTTP:
// validación → 400, no encontrado → 404, el resto → 500.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
