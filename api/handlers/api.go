package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autogallery/dealership-api/api"
	"github.com/autogallery/dealership-api/config"
	"github.com/autogallery/dealership-api/databases"
	"github.com/autogallery/dealership-api/inventory"
)

// App stores the router, store and config, so it can be reused
type App struct {
	Router  *mux.Router
	DB      databases.VehicleDatabase
	Service *inventory.Service
	Config  config.Config
	Hub     *InventoryHub
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the employee middleware
	m := api.MiddlewareConfig{Config: a.Config}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	v := Vehicle{Service: a.Service, Hub: a.Hub}
	admin := Admin{Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// inventory event stream
	r.HandleFunc("/ws/inventory", a.Hub.HandleInventoryWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.MetricsMiddleware)
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	// employee-only mutations
	apiCreate.Handle("/vehicle", api.Middleware(http.HandlerFunc(v.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/vehicle/{chassis_number}", api.Middleware(http.HandlerFunc(v.UpdateVehicleHandler))).Methods("PUT")
	apiCreate.Handle("/vehicle/{chassis_number}", api.Middleware(http.HandlerFunc(v.DeleteVehicleHandler))).Methods("DELETE")

	// customer-facing reads
	apiCreate.Handle("/vehicle/{chassis_number}", http.HandlerFunc(v.VehicleByChassisNumberHandler)).Methods("GET")
	apiCreate.Handle("/vehicles", http.HandlerFunc(v.VehicleHandler)).Methods("GET")
	apiCreate.Handle("/vehicles/search", http.HandlerFunc(v.VehicleSearchHandler)).Methods("GET")

	apiCreate.Handle("/admin/token", http.HandlerFunc(admin.AdminTokenHandler)).Methods("POST")
	apiCreate.Handle("/admin/metrics", admin.AdminMiddleware(http.HandlerFunc(MetricsTracesHandler))).Methods("GET")
	apiCreate.Handle("/admin/metrics/summary", admin.AdminMiddleware(http.HandlerFunc(MetricsSummaryHandler))).Methods("GET")
	apiCreate.Handle("/admin/metrics/routes", admin.AdminMiddleware(http.HandlerFunc(MetricsRoutesHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to open the vehicle store and create a router
func (a *App) Initialize() error {
	db, err := databases.NewVehicleDatabase(a.Config.StorePath)
	if err != nil {
		// if we fail to open the store, then kill the process
		zap.S().With(err).Error("failed to open vehicle store")
		return err
	}
	a.DB = db
	a.Service = inventory.New(db)
	a.Hub = NewInventoryHub()
	zap.S().Infow("dealership-api has opened the vehicle store", "path", a.Config.StorePath)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
