package web

import (
	"embed"
	"html/template"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

func Router(h *Handler) *gin.Engine {
	if os.Getenv("GIN_MODE") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestLogger(h.logger), gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pages := r.Group("/")
	pages.Use(h.withSession)
	{
		pages.GET("/", h.Index)
		pages.GET("/cart", h.ShowCart)
		pages.POST("/cart/add", h.AddToCart)
		pages.POST("/cart/update", h.UpdateQuantity)
		pages.POST("/cart/remove", h.RemoveFromCart)
		pages.POST("/cart/clear", h.ClearCart)
		pages.POST("/checkout", h.Checkout)
	}

	return r
}
