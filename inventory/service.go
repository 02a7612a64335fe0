package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autogallery/dealership-api/databases"
	"github.com/autogallery/dealership-api/models"
)

// Year and mileage bounds. The insert and update paths intentionally carry
// different caps; see the asymmetry test in service_test.go.
const (
	minYear          = 1886
	maxInsertYear    = 9999
	maxInsertMileage = 9999999
	maxUpdateMileage = 999999
	maxPrice         = 9999999
)

// Service enforces field-level and cross-field rules before delegating to the
// vehicle store. All rejections are ValidationErrors; anything else bubbling
// up from the store is treated as fatal by callers.
type Service struct {
	DB databases.VehicleDatabase

	// Now supplies the clock for the update path's current-year bound.
	Now func() time.Time
}

// New returns a Service over the given store.
func New(db databases.VehicleDatabase) *Service {
	return &Service{DB: db, Now: time.Now}
}

// AddVehicle validates and persists a new vehicle. The chassis number must
// not already exist in the store.
func (s *Service) AddVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle == nil {
		return emptyField("vehicle cannot be nil")
	}
	if strings.TrimSpace(vehicle.ChassisNumber) == "" {
		return emptyField("chassis number cannot be empty")
	}
	if strings.TrimSpace(vehicle.Make) == "" {
		return emptyField("make cannot be empty")
	}
	if strings.TrimSpace(vehicle.Model) == "" {
		return emptyField("model cannot be empty")
	}
	if vehicle.Year < minYear || vehicle.Year > maxInsertYear {
		return outOfRange(fmt.Sprintf("year must be between %d and %d", minYear, maxInsertYear))
	}
	if vehicle.Mileage < 0 || vehicle.Mileage > maxInsertMileage {
		return outOfRange(fmt.Sprintf("mileage cannot be negative or exceed %d", maxInsertMileage))
	}
	if vehicle.Price < 0 || vehicle.Price > maxPrice {
		return outOfRange(fmt.Sprintf("price must be between 0 and %d", maxPrice))
	}

	existing, err := s.DB.FindByChassisNumber(ctx, vehicle.ChassisNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return &ValidationError{
			Kind:    KindDuplicateKey,
			Message: "a vehicle with this chassis number already exists",
		}
	}

	if !models.ValidStatus(vehicle.Status) {
		return invalidEnum("status must be either 'in_stock' or 'sold'")
	}
	vehicle.Status = models.NormalizeStatus(vehicle.Status)

	return s.DB.Save(ctx, vehicle)
}

// UpdateVehicle validates and replaces an existing vehicle whole-record,
// keyed by chassis number. Merging blank input with prior values is the
// caller's job; the record passed here wins field for field.
func (s *Service) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle == nil {
		return emptyField("vehicle cannot be nil")
	}
	if strings.TrimSpace(vehicle.ChassisNumber) == "" {
		return emptyField("chassis number cannot be empty")
	}

	existing, err := s.DB.FindByChassisNumber(ctx, vehicle.ChassisNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		return &ValidationError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("vehicle with chassis number %s does not exist", vehicle.ChassisNumber),
		}
	}

	if strings.TrimSpace(vehicle.Make) == "" {
		return emptyField("make cannot be empty")
	}
	if strings.TrimSpace(vehicle.Model) == "" {
		return emptyField("model cannot be empty")
	}
	currentYear := s.Now().Year()
	if vehicle.Year < minYear || vehicle.Year > currentYear {
		return outOfRange(fmt.Sprintf("year must be between %d and %d", minYear, currentYear))
	}
	if vehicle.Mileage < 0 || vehicle.Mileage > maxUpdateMileage {
		return outOfRange(fmt.Sprintf("mileage cannot be negative or exceed %d", maxUpdateMileage))
	}
	if strings.TrimSpace(vehicle.Status) == "" {
		return emptyField("status cannot be empty")
	}
	if !models.ValidStatus(vehicle.Status) {
		return invalidEnum("status must be either 'in_stock' or 'sold'")
	}
	if vehicle.Price < 0 || vehicle.Price > maxPrice {
		return outOfRange(fmt.Sprintf("price must be between 0 and %d", maxPrice))
	}
	vehicle.Status = models.NormalizeStatus(vehicle.Status)

	return s.DB.Update(ctx, vehicle)
}

// DeleteVehicle removes the vehicle with the given chassis number. Unknown
// chassis numbers are rejected here, before the store's no-op delete.
func (s *Service) DeleteVehicle(ctx context.Context, chassisNumber string) error {
	if strings.TrimSpace(chassisNumber) == "" {
		return emptyField("chassis number cannot be empty")
	}

	existing, err := s.DB.FindByChassisNumber(ctx, chassisNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		return &ValidationError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("no vehicle found with chassis number: %s", chassisNumber),
		}
	}

	return s.DB.Delete(ctx, chassisNumber)
}

// GetVehicleByChassisNumber returns the vehicle with the given chassis number.
func (s *Service) GetVehicleByChassisNumber(ctx context.Context, chassisNumber string) (*models.Vehicle, error) {
	if strings.TrimSpace(chassisNumber) == "" {
		return nil, emptyField("chassis number cannot be empty")
	}

	existing, err := s.DB.FindByChassisNumber(ctx, chassisNumber)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &ValidationError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("no vehicle found with chassis number: %s", chassisNumber),
		}
	}
	return existing, nil
}

// GetAllVehicles returns every vehicle in the store, in file order.
func (s *Service) GetAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.DB.FindAll(ctx)
}

// SearchVehicles validates the filter's range bounds and status, then
// delegates the filtered scan to the store.
func (s *Service) SearchVehicles(ctx context.Context, filter databases.Filter) ([]models.Vehicle, error) {
	if filter.MinYear > filter.MaxYear {
		return nil, &ValidationError{Kind: KindInvertedRange, Message: "minYear cannot be greater than maxYear"}
	}
	if filter.MinMileage > filter.MaxMileage {
		return nil, &ValidationError{Kind: KindInvertedRange, Message: "minMileage cannot be greater than maxMileage"}
	}
	if filter.MinPrice > filter.MaxPrice {
		return nil, &ValidationError{Kind: KindInvertedRange, Message: "minPrice cannot be greater than maxPrice"}
	}
	if strings.TrimSpace(filter.Status) != "" && !models.ValidStatus(filter.Status) {
		return nil, invalidEnum("status must be 'in_stock' or 'sold'")
	}

	return s.DB.FindByFilter(ctx, filter)
}
