package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/session"
)

// addToCart godoc
// @Summary      Add one unit of a product to the session cart
// @Description  The product is not looked up; unknown ids are dropped when the cart is viewed.
// @Tags         cart
// @Param        id   path  int  true  "product id"
// @Success      302
// @Router       /add_to_cart/{id} [get]
func (a *app) addToCart(c *gin.Context) {
	s := session.From(c)
	id, ok := parseID(c)
	if !ok {
		a.notFound(c, "product")
		return
	}
	s.Cart.Add(id)
	s.AddFlash("Added to cart!")
	a.redirect(c, s, "/")
}

// viewCart godoc
// @Summary      Cart contents with a running total
// @Tags         cart
// @Produce      json
// @Success      200  {object}  Page
// @Router       /cart [get]
func (a *app) viewCart(c *gin.Context) {
	s := session.From(c)
	view, err := s.Cart.Resolve(c.Request.Context(), a.products)
	if err != nil {
		a.internalError(c, err)
		return
	}
	a.render(c, s, http.StatusOK, "cart", view)
}

func (a *app) clearCart(c *gin.Context) {
	s := session.From(c)
	s.Cart.Clear()
	s.AddFlash("Cart cleared!")
	a.redirect(c, s, "/cart")
}
