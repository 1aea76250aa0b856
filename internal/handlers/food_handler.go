package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/httpresp"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	uc "github.com/BruksfildServices01/uniease-api/internal/usecase/food"
)

// ======================================================
// HANDLER
// ======================================================

type FoodHandler struct {
	catalog  *uc.Catalog
	orders   *uc.Orders
	add      *uc.AddToCart
	view     *uc.ViewCart
	checkout *uc.Checkout
	pickup   *uc.ConfirmPickup
	status   *uc.SetOrderStatus
}

func NewFoodHandler(
	catalog *uc.Catalog,
	orders *uc.Orders,
	add *uc.AddToCart,
	view *uc.ViewCart,
	checkout *uc.Checkout,
	pickup *uc.ConfirmPickup,
	status *uc.SetOrderStatus,
) *FoodHandler {
	return &FoodHandler{
		catalog:  catalog,
		orders:   orders,
		add:      add,
		view:     view,
		checkout: checkout,
		pickup:   pickup,
		status:   status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddToCartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *FoodHandler) Outlets(c *gin.Context) {
	list, err := h.catalog.Outlets(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *FoodHandler) Menu(c *gin.Context) {
	list, err := h.catalog.Menu(c.Request.Context(), c.Param("outlet_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// CART
// ======================================================

func (h *FoodHandler) ViewCart(c *gin.Context) {
	out, err := h.view.Execute(c.Request.Context(), middleware.PrincipalFrom(c).UserID, c.Param("outlet_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *FoodHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.add.Execute(c.Request.Context(), uc.AddToCartInput{
		UserID:     middleware.PrincipalFrom(c).UserID,
		OutletID:   c.Param("outlet_id"),
		MenuItemID: req.ItemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *FoodHandler) Checkout(c *gin.Context) {
	out, err := h.checkout.Execute(c.Request.Context(), middleware.PrincipalFrom(c).UserID, c.Param("outlet_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// ORDERS
// ======================================================

func (h *FoodHandler) MyOrders(c *gin.Context) {
	list, err := h.orders.Mine(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *FoodHandler) ConfirmPickup(c *gin.Context) {
	out, err := h.pickup.Execute(c.Request.Context(), middleware.PrincipalFrom(c).UserID, c.Param("order_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// OUTLET ADMIN
// ======================================================

func (h *FoodHandler) MyOutlet(c *gin.Context) {
	out, err := h.orders.MyOutlet(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *FoodHandler) OutletOrders(c *gin.Context) {
	list, err := h.orders.ForOutlet(c.Request.Context(), middleware.PrincipalFrom(c).UserID, c.Param("outlet_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *FoodHandler) OutletOrder(c *gin.Context) {
	out, err := h.orders.OneForOutlet(
		c.Request.Context(),
		middleware.PrincipalFrom(c).UserID,
		c.Param("outlet_id"),
		c.Param("order_id"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *FoodHandler) SetOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid_request"))
		return
	}

	out, err := h.status.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c).UserID,
		c.Param("outlet_id"),
		c.Param("order_id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
