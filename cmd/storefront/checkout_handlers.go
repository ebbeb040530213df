package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/checkout"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/session"
)

type ordersData struct {
	Orders []order.Order `json:"orders"`
}

// createCheckoutSession godoc
// @Summary      Start payment for the session cart
// @Description  Redirects (303) to the hosted payment page, or back to the cart on error.
// @Tags         checkout
// @Success      303
// @Success      302
// @Router       /create-checkout-session [post]
func (a *app) createCheckoutSession(c *gin.Context) {
	s := session.From(c)
	if !a.requireLogin(c, s) {
		return
	}
	base := a.baseURL(c)
	target, err := a.checkout.Start(c.Request.Context(), s.Cart, base+"/success", base+"/cart")
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		s.AddFlash("Your cart is empty!")
		a.redirect(c, s, "/")
		return
	case errors.Is(err, checkout.ErrNothingToBuy):
		s.AddFlash("None of the items in your cart are available anymore.")
		a.redirect(c, s, "/cart")
		return
	case errors.Is(err, checkout.ErrGateway):
		s.AddFlash("Error: " + err.Error())
		a.redirect(c, s, "/cart")
		return
	case err != nil:
		a.internalError(c, err)
		return
	}
	a.redirectWith(c, s, http.StatusSeeOther, target)
}

// checkoutSuccess godoc
// @Summary      Payment success callback
// @Description  Records an order from the current session cart, clears the cart and redirects to the order history. An empty cart records nothing.
// @Tags         checkout
// @Success      302
// @Router       /success [get]
func (a *app) checkoutSuccess(c *gin.Context) {
	s := session.From(c)
	if !a.requireLogin(c, s) {
		return
	}
	o, err := a.checkout.Complete(c.Request.Context(), s.UserID, s.Cart)
	if err != nil {
		log.Printf("[checkout] rid=%s user=%d completion failed: %v", httpx.GetRequestID(c), s.UserID, err)
		s.AddFlash("Your order could not be saved. Please try again.")
		a.redirect(c, s, "/cart")
		return
	}
	if o != nil {
		s.AddFlash("Payment successful! Thank you for your order.")
	}
	s.Cart.Clear()
	a.redirect(c, s, "/my_orders")
}

// myOrders godoc
// @Summary      Order history of the logged-in user, newest first
// @Tags         orders
// @Produce      json
// @Success      200  {object}  Page
// @Router       /my_orders [get]
func (a *app) myOrders(c *gin.Context) {
	s := session.From(c)
	if !a.requireLogin(c, s) {
		return
	}
	orders, err := a.orders.ListByUser(c.Request.Context(), s.UserID)
	if err != nil {
		a.internalError(c, err)
		return
	}
	a.render(c, s, http.StatusOK, "my_orders", ordersData{Orders: orders})
}
