package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-ddd/internal/application"
	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/pkg/response"
	"github.com/danuartha/go-commerce-ddd/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type createOrderRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Items  []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderPayload(o *entity.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"product_id":  it.ProductID,
			"quantity":    it.Quantity,
			"unit_price":  it.UnitPrice,
			"total_price": it.TotalPrice(),
		})
	}
	return gin.H{
		"id":           o.ID,
		"user_id":      o.UserID,
		"items":        items,
		"status":       o.Status,
		"total_amount": o.TotalAmount,
		"created_at":   o.CreatedAt,
		"updated_at":   o.UpdatedAt,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := entity.NewOrderItem(entity.ProductID(it.ProductID), it.Quantity, it.UnitPrice)
		if err != nil {
			response.Error[any](c, statusFromErr(err), "invalid order item", err.Error())
			return
		}
		items = append(items, item)
	}

	o, err := h.Svc.CreateOrder(c.Request.Context(), entity.UserID(req.UserID), items)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", req.UserID).Warn("create order failed")
		response.Error[any](c, statusFromErr(err), "failed to create order", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, orderPayload(o), "order created", nil)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.Svc.GetOrder(c.Request.Context(), entity.OrderID(c.Param("id")))
	if err != nil {
		response.Error[any](c, statusFromErr(err), "order not found", nil)
		return
	}
	response.Success(c, http.StatusOK, orderPayload(o), "order", nil)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	status, err := entity.ParseOrderStatus(req.Status)
	if err != nil {
		response.Error[any](c, statusFromErr(err), "unknown status", err.Error())
		return
	}
	o, err := h.Svc.UpdateOrderStatus(c.Request.Context(), entity.OrderID(c.Param("id")), status)
	if err != nil {
		response.Error[any](c, statusFromErr(err), "failed to update order status", err.Error())
		return
	}
	response.Success(c, http.StatusOK, orderPayload(o), "order status updated", nil)
}

// ListByStatus lists orders in the status given by the required query param.
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	status, err := entity.ParseOrderStatus(c.Query("status"))
	if err != nil {
		response.Error[any](c, statusFromErr(err), "unknown status", err.Error())
		return
	}
	orders, err := h.Svc.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		response.Error[any](c, statusFromErr(err), "failed to list orders", nil)
		return
	}
	response.Success(c, http.StatusOK, ordersPayload(orders), "orders", gin.H{"count": len(orders)})
}

// ListByUser lists all orders belonging to the user in the path.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	orders, err := h.Svc.GetOrdersByUser(c.Request.Context(), entity.UserID(c.Param("id")))
	if err != nil {
		response.Error[any](c, statusFromErr(err), "failed to list orders", nil)
		return
	}
	response.Success(c, http.StatusOK, ordersPayload(orders), "orders", gin.H{"count": len(orders)})
}

func ordersPayload(orders []entity.Order) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderPayload(&orders[i]))
	}
	return out
}
