package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"metraj/collections"
	"metraj/config"
	"metraj/handlers"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Printf("Warning: config load failed, using defaults: %v", err)
	}

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateFormulaFactors(app); err != nil {
			log.Printf("Warning: formula factor migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Track the active project cookie globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Project activation ───────────────────────────────────
		se.Router.POST("/projects/{id}/activate", handlers.HandleProjectActivate(app))
		se.Router.POST("/projects/deactivate", handlers.HandleProjectDeactivate(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))
		se.Router.PATCH("/projects/{id}", handlers.HandleProjectEdit(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Takeoff items ────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/items", handlers.HandleItemList(app))
		se.Router.POST("/projects/{projectId}/items", handlers.HandleItemCreate(app))
		se.Router.PATCH("/projects/{projectId}/items/{itemId}", handlers.HandleItemUpdate(app))
		se.Router.DELETE("/projects/{projectId}/items/{itemId}", handlers.HandleItemDelete(app))

		// ── Takeoff import ───────────────────────────────────────
		se.Router.GET("/projects/{projectId}/items/template", handlers.HandleItemTemplateDownload(app))
		se.Router.POST("/projects/{projectId}/items/import", handlers.HandleItemImportValidate(app))
		se.Router.POST("/projects/{projectId}/items/import/commit", handlers.HandleItemImportCommit(app))
		se.Router.POST("/projects/{projectId}/items/import/errors", handlers.HandleItemImportErrors(app))

		// ── Poz catalog ──────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalogList(app))
		se.Router.GET("/catalog/{code}", handlers.HandleCatalogView(app))
		se.Router.GET("/catalog/{code}/requirements", handlers.HandleCatalogRequirements(app))

		// ── Material requirements ────────────────────────────────
		se.Router.GET("/projects/{projectId}/requirements", handlers.HandleRequirementsList(app))
		se.Router.GET("/projects/{projectId}/requirements/summary", handlers.HandleRequirementsSummary(app))
		se.Router.GET("/projects/{projectId}/requirements/export/excel", handlers.HandleRequirementsExportExcel(app, cfg))
		se.Router.GET("/projects/{projectId}/requirements/export/pdf", handlers.HandleRequirementsExportPDF(app, cfg))
		se.Router.GET("/projects/{projectId}/requirements/export/order", handlers.HandleRequirementsExportOrder(app, cfg))

		// ── BOQ export ───────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/boq/export/excel", handlers.HandleBOQExportExcel(app, cfg))
		se.Router.GET("/projects/{projectId}/boq/export/pdf", handlers.HandleBOQExportPDF(app, cfg))

		// ── Bids ─────────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/bids", handlers.HandleBidList(app))
		se.Router.POST("/projects/{projectId}/bids", handlers.HandleBidCreate(app))
		se.Router.GET("/projects/{projectId}/bids/comparison", handlers.HandleBidComparison(app))
		se.Router.PATCH("/projects/{projectId}/bids/{bidId}", handlers.HandleBidUpdate(app))
		se.Router.DELETE("/projects/{projectId}/bids/{bidId}", handlers.HandleBidDelete(app))

		// ── Utilities ────────────────────────────────────────────
		se.Router.GET("/convert", handlers.HandleConvert(app))
		se.Router.GET("/settings", handlers.HandleSettings(cfg))

		// Redirect home to projects list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
