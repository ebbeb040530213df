package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/storefront/docs"
	"github.com/MikeMC777/storefront/internal/checkout"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/user"
)

type app struct {
	products      product.Repository
	users         *user.Service
	orders        order.Repository
	checkout      *checkout.Service
	sessions      *session.Manager
	publicBaseURL string
}

func newRouter(a *app, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	r.Use(extra...)

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s := r.Group("/", a.sessions.Middleware())

	s.GET("/", a.index)
	s.GET("/product/:id", a.productDetail)
	s.GET("/admin/add", a.addProductForm)
	s.POST("/admin/add", a.addProduct)
	s.GET("/edit_product/:id", a.editProductForm)
	s.POST("/edit_product/:id", a.editProduct)
	s.GET("/delete_product/:id", a.deleteProduct)

	s.GET("/register", a.registerForm)
	s.POST("/register", a.register)
	s.GET("/login", a.loginForm)
	s.POST("/login", a.login)
	s.GET("/logout", a.logout)

	s.GET("/add_to_cart/:id", a.addToCart)
	s.GET("/cart", a.viewCart)
	s.GET("/clear_cart", a.clearCart)

	s.POST("/create-checkout-session", a.createCheckoutSession)
	s.GET("/success", a.checkoutSuccess)
	s.GET("/my_orders", a.myOrders)
	return r
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
