package databases

// go generate: mockery --name VehicleDatabase

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/autogallery/dealership-api/models"
)

// fieldCount is the number of comma-separated fields in one stored record:
// make,model,year,mileage,price,chassisNumber,status
const fieldCount = 7

// Filter holds the criteria for FindByFilter. Text fields are optional (blank
// means any); numeric bounds are mandatory and inclusive on both ends.
type Filter struct {
	Make       string
	Model      string
	MinYear    int
	MaxYear    int
	MinMileage int
	MaxMileage int
	MinPrice   float64
	MaxPrice   float64
	Status     string
}

// VehicleDatabase contains the methods to use with the vehicle store
type VehicleDatabase interface {
	FindByChassisNumber(ctx context.Context, chassisNumber string) (*models.Vehicle, error)
	Save(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, chassisNumber string) error
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	FindByFilter(ctx context.Context, filter Filter) ([]models.Vehicle, error)
}

type vehicleDatabase struct {
	path string
	mu   sync.Mutex
}

// NewVehicleDatabase initializes a vehicle store backed by the text file at
// the given path. The file itself is created lazily on first write; a missing
// file reads as an empty store. The whole store is guarded by one mutex, so
// concurrent callers serialize on it.
func NewVehicleDatabase(path string) (VehicleDatabase, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "init", Path: path, Err: err}
	}
	return &vehicleDatabase{path: path}, nil
}

// FindByChassisNumber scans the file in order and returns the first record
// whose chassis number matches, or nil when none does.
func (c *vehicleDatabase) FindByChassisNumber(ctx context.Context, chassisNumber string) (*models.Vehicle, error) {
	if strings.TrimSpace(chassisNumber) == "" {
		return nil, ErrEmptyChassisNumber
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var found *models.Vehicle
	err := c.scan(func(v models.Vehicle) bool {
		if v.ChassisNumber == chassisNumber {
			found = &v
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Save appends one new record to the store, creating the file if absent.
// Uniqueness of the chassis number is the inventory layer's responsibility.
func (c *vehicleDatabase) Save(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle == nil {
		return ErrNilVehicle
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Op: "save", Path: c.path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(vehicle) + "\n"); err != nil {
		return &StorageError{Op: "save", Path: c.path, Err: err}
	}
	return nil
}

// Update rewrites the whole file, replacing the line whose chassis number
// matches the given vehicle. Other valid lines pass through unchanged; lines
// with the wrong field count are dropped from the rewritten file. Returns
// ErrNotFound when no line matched.
func (c *vehicleDatabase) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle == nil || strings.TrimSpace(vehicle.ChassisNumber) == "" {
		if vehicle == nil {
			return ErrNilVehicle
		}
		return ErrEmptyChassisNumber
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	updated := false
	err := c.rewrite("update", func(parts []string, raw string, out *[]string) {
		if strings.TrimSpace(parts[5]) == vehicle.ChassisNumber {
			*out = append(*out, formatLine(vehicle))
			updated = true
			return
		}
		*out = append(*out, raw)
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// Delete rewrites the whole file omitting any line whose chassis number
// matches. A chassis number with no matching line is a no-op at this layer;
// rejecting deletes of unknown ids is the inventory layer's job.
func (c *vehicleDatabase) Delete(ctx context.Context, chassisNumber string) error {
	if strings.TrimSpace(chassisNumber) == "" {
		return ErrEmptyChassisNumber
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rewrite("delete", func(parts []string, raw string, out *[]string) {
		if strings.TrimSpace(parts[5]) == chassisNumber {
			return
		}
		*out = append(*out, raw)
	})
}

// FindAll returns every structurally valid record in file order.
func (c *vehicleDatabase) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vehicles := []models.Vehicle{}
	err := c.scan(func(v models.Vehicle) bool {
		vehicles = append(vehicles, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindByFilter returns every valid record matching all of the filter's
// criteria. Make, model and status match case-insensitively or are ignored
// when blank; numeric bounds are inclusive on both ends.
func (c *vehicleDatabase) FindByFilter(ctx context.Context, filter Filter) ([]models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vehicles := []models.Vehicle{}
	err := c.scan(func(v models.Vehicle) bool {
		if matchesFilter(v, filter) {
			vehicles = append(vehicles, v)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func matchesFilter(v models.Vehicle, f Filter) bool {
	if f.Make != "" && !strings.EqualFold(v.Make, f.Make) {
		return false
	}
	if f.Model != "" && !strings.EqualFold(v.Model, f.Model) {
		return false
	}
	if v.Year < f.MinYear || v.Year > f.MaxYear {
		return false
	}
	if v.Mileage < f.MinMileage || v.Mileage > f.MaxMileage {
		return false
	}
	if v.Price < f.MinPrice || v.Price > f.MaxPrice {
		return false
	}
	if strings.TrimSpace(f.Status) != "" && !strings.EqualFold(v.Status, f.Status) {
		return false
	}
	return true
}

// scan reads the file line by line, parsing each structurally valid line into
// a vehicle and passing it to visit. Lines with the wrong field count are
// skipped; any other parse failure aborts the whole scan with a StorageError.
// A missing file reads as an empty store. Caller must hold the mutex.
func (c *vehicleDatabase) scan(visit func(models.Vehicle) bool) error {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{Op: "read", Path: c.path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) != fieldCount {
			continue
		}
		v, err := parseRecord(parts)
		if err != nil {
			return &StorageError{Op: "read", Path: c.path, Err: err}
		}
		if !visit(v) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return &StorageError{Op: "read", Path: c.path, Err: err}
	}
	return nil
}

// rewrite streams every line of the file through transform into a temp file
// in the same directory, then atomically swaps the temp file in for the
// original. Lines that do not split into exactly fieldCount fields are
// dropped with a warning rather than passed through. Caller must hold the
// mutex.
func (c *vehicleDatabase) rewrite(op string, transform func(parts []string, raw string, out *[]string)) error {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			// nothing stored yet; rewriting an empty store writes an empty file
			f = nil
		} else {
			return &StorageError{Op: op, Path: c.path, Err: err}
		}
	}

	out := []string{}
	if f != nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			raw := scanner.Text()
			parts := strings.Split(raw, ",")
			if len(parts) != fieldCount {
				zap.S().Warnw("dropping malformed line from vehicle store",
					"op", op,
					"path", c.path,
					"fields", len(parts),
				)
				continue
			}
			transform(parts, raw, &out)
		}
		if err := scanner.Err(); err != nil {
			f.Close()
			return &StorageError{Op: op, Path: c.path, Err: err}
		}
		f.Close()
	}

	tmpPath := filepath.Join(filepath.Dir(c.path), "temp_"+filepath.Base(c.path))
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Op: op, Path: tmpPath, Err: err}
	}
	w := bufio.NewWriter(tmp)
	for _, line := range out {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return &StorageError{Op: op, Path: tmpPath, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &StorageError{Op: op, Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Op: op, Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Op: op, Path: c.path, Err: err}
	}
	return nil
}

func parseRecord(parts []string) (models.Vehicle, error) {
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("invalid year %q: %w", parts[2], err)
	}
	mileage, err := strconv.Atoi(parts[3])
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("invalid mileage %q: %w", parts[3], err)
	}
	price, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("invalid price %q: %w", parts[4], err)
	}
	return models.Vehicle{
		Make:          parts[0],
		Model:         parts[1],
		Year:          year,
		Mileage:       mileage,
		Price:         price,
		ChassisNumber: parts[5],
		Status:        parts[6],
	}, nil
}

func formatLine(v *models.Vehicle) string {
	return strings.Join([]string{
		v.Make,
		v.Model,
		strconv.Itoa(v.Year),
		strconv.Itoa(v.Mileage),
		formatPrice(v.Price),
		v.ChassisNumber,
		v.Status,
	}, ",")
}

// formatPrice keeps the file's decimal form: whole prices render as 15000.0,
// not 15000.
func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
