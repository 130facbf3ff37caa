package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/Prakash-Shridharan/handshake/internal/app"
	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/constants"
	"github.com/Prakash-Shridharan/handshake/internal/controllers"
	"github.com/Prakash-Shridharan/handshake/internal/middleware"
	"github.com/Prakash-Shridharan/handshake/internal/routes"
	"github.com/Prakash-Shridharan/handshake/internal/services"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application := app.NewApp(cfg)
	defer application.Close()

	marketplaceService := services.NewMarketplaceService(cfg, application.Ledger)
	escalationService := services.NewEscalationService(cfg, application.Ledger)

	jobsController := controllers.NewJobsController(marketplaceService)
	bidsController := controllers.NewBidsController(marketplaceService)
	invoicesController := controllers.NewInvoicesController(marketplaceService)
	healthController := controllers.NewHealthController(cfg)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.JobsBase, jobsController.CreateJobHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.JobsOpen, jobsController.ListOpenJobsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobsMy, jobsController.ListMyJobsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobsComplete, jobsController.CompleteJobHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.JobByID, jobsController.GetJobHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobBids, jobsController.ListJobBidsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.BidsBase, bidsController.SubmitBidHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.BidsMy, bidsController.ListMyBidsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.BidsAccept, bidsController.AcceptBidHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.InvoicesBase, invoicesController.ListInvoicesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.InvoicesPay, invoicesController.PayInvoiceHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc(constants.EscalationSweepSpec, func() {
		if e := escalationService.RunEscalationCheck(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Emergency escalation check failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule escalation cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "ngrok-skip-browser-warning"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("handshake failed to start:", err)
	}
}
