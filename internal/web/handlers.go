// Package web is the gin layer over the cart/checkout core: it parses
// forms, maps errors to flash messages and renders the templates. No
// business rule lives here.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/session"
)

type Handler struct {
	catalog  *catalog.Service
	cart     *cart.Service
	checkout *checkout.Service
	sessions session.Store

	secret     string
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewHandler(
	catalogService *catalog.Service,
	cartService *cart.Service,
	checkoutService *checkout.Service,
	sessions session.Store,
	secret string,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:    catalogService,
		cart:       cartService,
		checkout:   checkoutService,
		sessions:   sessions,
		secret:     secret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.catalog.List(ctx)
	if err != nil {
		h.logger.Error("listing products failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	flash, err := session.TakeFlash(ctx, h.sessions, sessionToken(c))
	if err != nil {
		h.logger.Error("taking flash failed", "error", err)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Products": products,
		"Flash":    flash,
	})
}

func (h *Handler) ShowCart(c *gin.Context) {
	ctx := c.Request.Context()
	token := sessionToken(c)

	view, err := h.cart.View(ctx, token)
	if err != nil {
		h.logger.Error("viewing cart failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	flash, err := session.TakeFlash(ctx, h.sessions, token)
	if err != nil {
		h.logger.Error("taking flash failed", "error", err)
	}

	c.HTML(http.StatusOK, "cart.html", gin.H{
		"Cart":  view,
		"Flash": flash,
	})
}

func (h *Handler) AddToCart(c *gin.Context) {
	ctx := c.Request.Context()
	token := sessionToken(c)

	productID, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		h.flashError(c, "Invalid product.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		quantity = 1
	}

	err = h.cart.AddItem(ctx, token, productID, quantity)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		h.flashError(c, "Product not found.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	case err != nil:
		h.logger.Error("adding item failed", "product_id", productID, "error", err)
		h.flashError(c, "Something went wrong, please try again.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	h.flashSuccess(c, "Added to cart.")
	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	ctx := c.Request.Context()
	token := sessionToken(c)

	productID, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		h.flashError(c, "Invalid product.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		h.flashError(c, "Invalid quantity.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	err = h.cart.UpdateQuantity(ctx, token, productID, quantity)
	switch {
	case errors.Is(err, domain.ErrCartLineNotFound):
		h.flashError(c, "That item is not in your cart.")
	case err != nil:
		h.logger.Error("updating quantity failed", "product_id", productID, "error", err)
		h.flashError(c, "Something went wrong, please try again.")
	}

	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	ctx := c.Request.Context()
	token := sessionToken(c)

	productID, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		h.flashError(c, "Invalid product.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	if err := h.cart.RemoveItem(ctx, token, productID); err != nil {
		h.logger.Error("removing item failed", "product_id", productID, "error", err)
		h.flashError(c, "Something went wrong, please try again.")
	}

	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), sessionToken(c)); err != nil {
		h.logger.Error("clearing cart failed", "error", err)
		h.flashError(c, "Something went wrong, please try again.")
	}

	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *Handler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	token := sessionToken(c)

	_, err := h.checkout.Checkout(ctx, token)
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		h.flashError(c, "Your cart is empty.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	case err != nil:
		h.logger.Error("checkout failed", "error", err)
		h.flashError(c, "Checkout failed, please try again.")
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	// The success flash was set together with the cart clear.
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) flashError(c *gin.Context, msg string) {
	err := session.SetFlash(c.Request.Context(), h.sessions, sessionToken(c), domain.Flash{Error: msg})
	if err != nil {
		h.logger.Error("setting flash failed", "error", err)
	}
}

func (h *Handler) flashSuccess(c *gin.Context, msg string) {
	err := session.SetFlash(c.Request.Context(), h.sessions, sessionToken(c), domain.Flash{Success: msg})
	if err != nil {
		h.logger.Error("setting flash failed", "error", err)
	}
}
