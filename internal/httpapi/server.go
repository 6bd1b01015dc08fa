package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/ledger"
)

// Handler serves one ledger over JSON.
type Handler struct {
	Ledger *ledger.Ledger
	Layout ledger.Layout
}

// NewRouter wires the routes and CORS for a browser front end.
func NewRouter(l *ledger.Ledger, cfg config.Config) *gin.Engine {
	layout, err := ledger.ParseLayout(cfg.Export.Layout)
	if err != nil {
		layout = ledger.LayoutSplit
	}
	h := &Handler{Ledger: l, Layout: layout}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	origins := cfg.HTTP.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", h.health)
	api := r.Group("/api")
	api.GET("/transactions", h.listTransactions)
	api.POST("/transactions", h.addTransaction)
	api.PATCH("/transactions/:id", h.editTransaction)
	api.DELETE("/transactions/:id", h.deleteTransaction)
	api.PUT("/filters/:field", h.setFilter)
	api.DELETE("/filters", h.clearFilters)
	api.POST("/refresh", h.refresh)
	api.GET("/reference", h.reference)
	api.GET("/export.csv", h.exportCSV)
	return r
}
