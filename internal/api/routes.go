package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
		r.Post("/register", s.HandleRegister)
		r.Post("/refresh", s.HandleRefresh)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.HandleGetCurrentUser)
			r.Get("/verify", s.HandleVerifyToken)
		})
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		// Properties
		r.Route("/properties", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListProperties)
			r.Post("/", s.HandleCreateProperty)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetProperty)
				r.Put("/", s.HandleUpdateProperty)
				r.Delete("/", s.HandleDeleteProperty)
			})
		})

		// Tenants
		r.Route("/tenants", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListTenants)
			r.Post("/", s.HandleCreateTenant)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetTenant)
				r.Put("/", s.HandleUpdateTenant)
				r.Delete("/", s.HandleDeleteTenant)
			})
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListTransactions)
			r.Post("/", s.HandleCreateTransaction)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetTransaction)
				r.Put("/", s.HandleUpdateTransaction)
				r.Delete("/", s.HandleDeleteTransaction)
			})
		})

		// Alerts
		r.Route("/alerts", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListAlerts)
			r.Post("/", s.HandleCreateAlert)
			r.Post("/generate", s.HandleGenerateAlerts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetAlert)
				r.Put("/", s.HandleUpdateAlert)
				r.Put("/resolve", s.HandleResolveAlert)
				r.Delete("/", s.HandleDeleteAlert)
			})
		})

		// Energy bills
		r.Route("/energy-bills", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListEnergyBills)
			r.Post("/", s.HandleCreateEnergyBill)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetEnergyBill)
				r.Put("/", s.HandleUpdateEnergyBill)
				r.Delete("/", s.HandleDeleteEnergyBill)
			})
		})

		// Water bills
		r.Route("/water-bills", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListWaterBills)
			r.Post("/", s.HandleCreateWaterBill)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetWaterBill)
				r.Put("/", s.HandleUpdateWaterBill)
				r.Delete("/", s.HandleDeleteWaterBill)
			})
		})

		// Documents
		r.Route("/documents", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListDocuments)
			r.Post("/", s.HandleCreateDocument)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetDocument)
				r.Put("/", s.HandleUpdateDocument)
				r.Delete("/", s.HandleDeleteDocument)
			})
		})

		// Dashboard
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/summary", s.HandleDashboardSummary)
		})
	})
}
