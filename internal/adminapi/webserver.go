package adminapi

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/internal/app"
)

// WebServer exposes the POS core operations over HTTP for the UI
// collaborator. It binds to the configured (local) address; there is
// no multi-user auth layer, the application is a single-actor tool.
type WebServer struct {
	app  app.AppContext
	root *echo.Echo
}

func NewWebServer(a app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &WebServer{app: a, root: e}
	s.registerRoutes()
	return s
}

func (s *WebServer) registerRoutes() {
	api := s.root.Group("/api")

	api.GET("/products", s.listProducts)
	api.POST("/products", s.createProduct)
	api.PUT("/products/:id", s.updateProduct)
	api.DELETE("/products/:id", s.deleteProduct)

	api.GET("/cart", s.getCart)
	api.GET("/cart/verify", s.verifyCart)
	api.POST("/cart/items", s.addToCart)
	api.PUT("/cart/items/:key", s.updateCartItem)
	api.DELETE("/cart/items/:key", s.removeCartItem)
	api.DELETE("/cart", s.clearCart)

	api.POST("/checkout", s.processPurchase)

	api.GET("/sales", s.listSales)
	api.GET("/sales/:id/receipt", s.downloadReceipt)
	api.POST("/sales/:id/receipt/email", s.emailReceipt)
	api.GET("/reports/daily", s.dailyReport)
	api.GET("/reports/daily/export", s.exportDailyReport)

	api.GET("/returns", s.listReturns)
	api.POST("/returns", s.processReturn)

	api.GET("/settings/state", s.getAppState)
	api.GET("/settings/email", s.getEmailConfig)
	api.PUT("/settings/email", s.saveEmailConfig)

	api.POST("/backup", s.createBackup)
	api.POST("/restore", s.restoreBackup)
	api.POST("/demo-data", s.createDemoData)
}

// Start runs the HTTP server until it fails or is shut down.
func (s *WebServer) Start() error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("admin api listening on %s", addr)
	return s.root.Start(addr)
}
