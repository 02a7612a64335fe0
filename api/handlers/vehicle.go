package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autogallery/dealership-api/config"
	"github.com/autogallery/dealership-api/databases"
	"github.com/autogallery/dealership-api/inventory"
	"github.com/autogallery/dealership-api/models"
)

// Default covering ranges for search: omitted numeric bounds mean "unbounded",
// and the inventory contract wants a full range rather than a sentinel.
const (
	defaultMaxYear    = 9999
	defaultMaxMileage = 9999999
	defaultMaxPrice   = 9999999
)

// Vehicle exported for testing purposes
type Vehicle struct {
	Service *inventory.Service
	Hub     *InventoryHub
}

// vehicleUpdateRequest carries a partial update body. Omitted fields keep the
// stored record's prior values, the way the original caller merged blank
// input before updating.
type vehicleUpdateRequest struct {
	Make    *string  `json:"make"`
	Model   *string  `json:"model"`
	Year    *int     `json:"year"`
	Mileage *int     `json:"mileage"`
	Price   *float64 `json:"price"`
	Status  *string  `json:"status"`
}

// VehicleHandler returns all vehicles
func (v Vehicle) VehicleHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := v.Service.GetAllVehicles(r.Context())
	if err != nil {
		serviceErrorStatus("failed to get vehicles", w, err)
		return
	}
	// Because the frontend requires that the data elements exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleByChassisNumberHandler returns a vehicle by chassis number
func (v Vehicle) VehicleByChassisNumberHandler(w http.ResponseWriter, r *http.Request) {
	chassisNumber := mux.Vars(r)["chassis_number"]

	zap.S().Debugf("chassis_number: %v", chassisNumber)

	dbResp, err := v.Service.GetVehicleByChassisNumber(r.Context(), chassisNumber)
	if err != nil {
		serviceErrorStatus("failed to get vehicle by chassis number", w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleSearchHandler returns all vehicles matching the given search criteria
func (v Vehicle) VehicleSearchHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilterFromQuery(r)
	if err != nil {
		config.ErrorStatus("failed to parse search criteria", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := v.Service.SearchVehicles(r.Context(), filter)
	if err != nil {
		serviceErrorStatus("failed to search vehicles", w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateVehicleHandler creates a vehicle
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := v.Service.AddVehicle(r.Context(), &vehicle); err != nil {
		serviceErrorStatus("failed to create vehicle", w, err)
		return
	}

	v.Hub.Broadcast("vehicle_created", vehicle)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Vehicle created successfully",
		"chassisNumber": vehicle.ChassisNumber,
	})
}

// UpdateVehicleHandler replaces a vehicle's record, merging omitted fields
// with the stored values first
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	chassisNumber := mux.Vars(r)["chassis_number"]

	var req vehicleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	existing, err := v.Service.GetVehicleByChassisNumber(r.Context(), chassisNumber)
	if err != nil {
		serviceErrorStatus("failed to get vehicle by chassis number", w, err)
		return
	}

	vehicle := mergeUpdate(*existing, req)
	if err := v.Service.UpdateVehicle(r.Context(), &vehicle); err != nil {
		serviceErrorStatus("failed to update vehicle", w, err)
		return
	}

	v.Hub.Broadcast("vehicle_updated", vehicle)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle updated successfully",
	})
}

// DeleteVehicleHandler deletes a vehicle by chassis number
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	chassisNumber := mux.Vars(r)["chassis_number"]

	if err := v.Service.DeleteVehicle(r.Context(), chassisNumber); err != nil {
		serviceErrorStatus("failed to delete vehicle", w, err)
		return
	}

	v.Hub.Broadcast("vehicle_deleted", map[string]string{"chassisNumber": chassisNumber})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}

func mergeUpdate(existing models.Vehicle, req vehicleUpdateRequest) models.Vehicle {
	if req.Make != nil {
		existing.Make = *req.Make
	}
	if req.Model != nil {
		existing.Model = *req.Model
	}
	if req.Year != nil {
		existing.Year = *req.Year
	}
	if req.Mileage != nil {
		existing.Mileage = *req.Mileage
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	return existing
}

func searchFilterFromQuery(r *http.Request) (databases.Filter, error) {
	filter := databases.Filter{
		Make:       r.URL.Query().Get("make"),
		Model:      r.URL.Query().Get("model"),
		Status:     r.URL.Query().Get("status"),
		MaxYear:    defaultMaxYear,
		MaxMileage: defaultMaxMileage,
		MaxPrice:   defaultMaxPrice,
	}

	var err error
	if filter.MinYear, err = intQueryParam(r, "min_year", 0); err != nil {
		return filter, err
	}
	if filter.MaxYear, err = intQueryParam(r, "max_year", defaultMaxYear); err != nil {
		return filter, err
	}
	if filter.MinMileage, err = intQueryParam(r, "min_mileage", 0); err != nil {
		return filter, err
	}
	if filter.MaxMileage, err = intQueryParam(r, "max_mileage", defaultMaxMileage); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = floatQueryParam(r, "min_price", 0); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatQueryParam(r, "max_price", defaultMaxPrice); err != nil {
		return filter, err
	}
	return filter, nil
}

func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func floatQueryParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// serviceErrorStatus maps inventory and storage failures onto HTTP statuses:
// validation errors are the caller's fault, storage errors are ours.
func serviceErrorStatus(message string, w http.ResponseWriter, err error) {
	if ve, ok := inventory.AsValidation(err); ok {
		code := http.StatusBadRequest
		if ve.Kind == inventory.KindNotFound {
			code = http.StatusNotFound
		}
		config.ErrorStatus(message, code, w, err)
		return
	}
	config.ErrorStatus(message, http.StatusInternalServerError, w, err)
}
