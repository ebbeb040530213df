package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
)

type catalogData struct {
	Search   string            `json:"search,omitempty"`
	Products []product.Product `json:"products"`
}

type productFormData struct {
	Product *product.Product `json:"product,omitempty"`
	Form    *product.Form    `json:"form,omitempty"`
}

func productFormMessage(err error) string {
	switch {
	case errors.Is(err, product.ErrInvalidPrice):
		return "Invalid price. Please enter a number."
	case errors.Is(err, product.ErrNameRequired):
		return "Product name is required."
	case errors.Is(err, product.ErrNameTooLong):
		return fmt.Sprintf("Product name must be at most %d characters.", product.MaxNameLen)
	case errors.Is(err, product.ErrImageURLTooLong):
		return fmt.Sprintf("Image URL must be at most %d characters.", product.MaxImageURLLen)
	default:
		return err.Error()
	}
}

// index godoc
// @Summary      Catalog listing
// @Description  Lists every product, or those whose name contains search.
// @Tags         catalog
// @Produce      json
// @Param        search  query     string  false  "substring of the product name"
// @Success      200     {object}  Page
// @Router       / [get]
func (a *app) index(c *gin.Context) {
	s := session.From(c)
	search := strings.TrimSpace(c.Query("search"))
	items, err := a.products.List(c.Request.Context(), search)
	if err != nil {
		a.internalError(c, err)
		return
	}
	a.render(c, s, http.StatusOK, "index", catalogData{Search: search, Products: items})
}

// productDetail godoc
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "product id"
// @Success      200  {object}  Page
// @Failure      404  {object}  HTTPError
// @Router       /product/{id} [get]
func (a *app) productDetail(c *gin.Context) {
	s := session.From(c)
	id, ok := parseID(c)
	if !ok {
		a.notFound(c, "product")
		return
	}
	p, err := a.products.GetByID(c.Request.Context(), id)
	if errors.Is(err, product.ErrNotFound) {
		a.notFound(c, "product")
		return
	}
	if err != nil {
		a.internalError(c, err)
		return
	}
	a.render(c, s, http.StatusOK, "product", productFormData{Product: p})
}

func (a *app) addProductForm(c *gin.Context) {
	s := session.From(c)
	if !a.requireSeller(c, s) {
		return
	}
	a.render(c, s, http.StatusOK, "add_product", nil)
}

// addProduct godoc
// @Summary      Add a product (sellers only)
// @Tags         catalog
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name         formData  string  true   "product name"
// @Param        price        formData  string  true   "price in major units"
// @Param        image_url    formData  string  false  "image reference"
// @Param        description  formData  string  false  "description"
// @Success      302
// @Failure      400  {object}  Page
// @Router       /admin/add [post]
func (a *app) addProduct(c *gin.Context) {
	s := session.From(c)
	if !a.requireSeller(c, s) {
		return
	}
	var form product.Form
	_ = c.ShouldBind(&form)
	p, err := form.Product()
	if err != nil {
		s.AddFlash(productFormMessage(err))
		a.render(c, s, http.StatusBadRequest, "add_product", productFormData{Form: &form})
		return
	}
	if err := a.products.Create(c.Request.Context(), p); err != nil {
		a.internalError(c, err)
		return
	}
	s.AddFlash("Product added successfully!")
	a.redirect(c, s, "/")
}

func (a *app) editProductForm(c *gin.Context) {
	s := session.From(c)
	if !a.requireSeller(c, s) {
		return
	}
	p, ok := a.loadProduct(c)
	if !ok {
		return
	}
	a.render(c, s, http.StatusOK, "edit_product", productFormData{Product: p})
}

// editProduct godoc
// @Summary      Edit a product (sellers only)
// @Tags         catalog
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id           path      int     true   "product id"
// @Param        name         formData  string  true   "product name"
// @Param        price        formData  string  true   "price in major units"
// @Param        image_url    formData  string  false  "image reference"
// @Param        description  formData  string  false  "description"
// @Success      302
// @Failure      400  {object}  Page
// @Failure      404  {object}  HTTPError
// @Router       /edit_product/{id} [post]
func (a *app) editProduct(c *gin.Context) {
	s := session.From(c)
	if !a.requireSeller(c, s) {
		return
	}
	current, ok := a.loadProduct(c)
	if !ok {
		return
	}
	var form product.Form
	_ = c.ShouldBind(&form)
	p, err := form.Product()
	if err != nil {
		s.AddFlash(productFormMessage(err))
		a.render(c, s, http.StatusBadRequest, "edit_product", productFormData{Product: current, Form: &form})
		return
	}
	p.ID = current.ID
	err = a.products.Update(c.Request.Context(), p)
	if errors.Is(err, product.ErrNotFound) {
		a.notFound(c, "product")
		return
	}
	if err != nil {
		a.internalError(c, err)
		return
	}
	s.AddFlash("Product updated!")
	a.redirect(c, s, "/product/"+strconv.FormatInt(p.ID, 10))
}

// deleteProduct godoc
// @Summary      Delete a product (sellers only)
// @Tags         catalog
// @Param        id   path  int  true  "product id"
// @Success      302
// @Failure      404  {object}  HTTPError
// @Router       /delete_product/{id} [get]
func (a *app) deleteProduct(c *gin.Context) {
	s := session.From(c)
	if !a.requireSeller(c, s) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		a.notFound(c, "product")
		return
	}
	deleted, err := a.products.Delete(c.Request.Context(), id)
	if err != nil {
		a.internalError(c, err)
		return
	}
	if !deleted {
		a.notFound(c, "product")
		return
	}
	s.AddFlash("Product deleted!")
	a.redirect(c, s, "/")
}

func (a *app) loadProduct(c *gin.Context) (*product.Product, bool) {
	id, ok := parseID(c)
	if !ok {
		a.notFound(c, "product")
		return nil, false
	}
	p, err := a.products.GetByID(c.Request.Context(), id)
	if errors.Is(err, product.ErrNotFound) {
		a.notFound(c, "product")
		return nil, false
	}
	if err != nil {
		a.internalError(c, err)
		return nil, false
	}
	return p, true
}
