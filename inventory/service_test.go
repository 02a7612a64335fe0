package inventory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autogallery/dealership-api/databases"
	"github.com/autogallery/dealership-api/models"
)

// the update path's year bound moves with the clock, so tests pin it
var testNow = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := databases.NewVehicleDatabase(filepath.Join(t.TempDir(), "car.txt"))
	require.NoError(t, err)
	s := New(db)
	s.Now = func() time.Time { return testNow }
	return s
}

func validVehicle(chassisNumber string) *models.Vehicle {
	return &models.Vehicle{
		Make:          "Toyota",
		Model:         "Corolla",
		Year:          2018,
		Mileage:       45000,
		Price:         12000.0,
		ChassisNumber: chassisNumber,
		Status:        "in_stock",
	}
}

func requireKind(t *testing.T, err error, kind ValidationKind) {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Equal(t, kind, ve.Kind)
}

func TestAddVehicleValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Vehicle)
		kind   ValidationKind
	}{
		{"empty chassis number", func(v *models.Vehicle) { v.ChassisNumber = "" }, KindEmptyField},
		{"empty make", func(v *models.Vehicle) { v.Make = " " }, KindEmptyField},
		{"empty model", func(v *models.Vehicle) { v.Model = "" }, KindEmptyField},
		{"negative mileage", func(v *models.Vehicle) { v.Mileage = -1 }, KindOutOfRange},
		{"mileage above insert cap", func(v *models.Vehicle) { v.Mileage = 10000000 }, KindOutOfRange},
		{"negative price", func(v *models.Vehicle) { v.Price = -0.01 }, KindOutOfRange},
		{"price above cap", func(v *models.Vehicle) { v.Price = 9999999.01 }, KindOutOfRange},
		{"empty status", func(v *models.Vehicle) { v.Status = "" }, KindInvalidEnum},
		{"unknown status", func(v *models.Vehicle) { v.Status = "reserved" }, KindInvalidEnum},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			v := validVehicle("CH001")
			tc.mutate(v)
			requireKind(t, s.AddVehicle(context.Background(), v), tc.kind)
		})
	}
}

func TestAddVehicleNil(t *testing.T) {
	s := newTestService(t)
	requireKind(t, s.AddVehicle(context.Background(), nil), KindEmptyField)
}

func TestAddVehicleBoundaryYears(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tooOld := validVehicle("CH001")
	tooOld.Year = 1885
	requireKind(t, s.AddVehicle(ctx, tooOld), KindOutOfRange)

	first := validVehicle("CH002")
	first.Year = 1886
	assert.NoError(t, s.AddVehicle(ctx, first))

	max := validVehicle("CH003")
	max.Year = 9999
	assert.NoError(t, s.AddVehicle(ctx, max))

	beyond := validVehicle("CH004")
	beyond.Year = 10000
	requireKind(t, s.AddVehicle(ctx, beyond), KindOutOfRange)
}

func TestAddVehicleDuplicateChassisNumber(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))

	dupe := validVehicle("CH001")
	dupe.Make = "Honda"
	err := s.AddVehicle(ctx, dupe)
	requireKind(t, err, KindDuplicateKey)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddVehicleNormalizesStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	v := validVehicle("CH001")
	v.Status = " IN_STOCK "
	require.NoError(t, s.AddVehicle(ctx, v))

	got, err := s.GetVehicleByChassisNumber(ctx, "CH001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInStock, got.Status)
}

func TestAddThenGetRoundTrip(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	v := validVehicle("CH001")
	require.NoError(t, s.AddVehicle(ctx, v))

	got, err := s.GetVehicleByChassisNumber(ctx, "CH001")
	require.NoError(t, err)
	assert.Equal(t, *v, *got)
}

func TestUpdateVehicleReplacesWholeRecord(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))

	replacement := &models.Vehicle{
		Make:          "Honda",
		Model:         "Civic",
		Year:          2019,
		Mileage:       30000,
		Price:         15000.0,
		ChassisNumber: "CH001",
		Status:        "sold",
	}
	require.NoError(t, s.UpdateVehicle(ctx, replacement))

	got, err := s.GetVehicleByChassisNumber(ctx, "CH001")
	require.NoError(t, err)
	assert.Equal(t, *replacement, *got)
}

func TestUpdateVehicleValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Vehicle)
		kind   ValidationKind
	}{
		{"empty make", func(v *models.Vehicle) { v.Make = "" }, KindEmptyField},
		{"empty model", func(v *models.Vehicle) { v.Model = "" }, KindEmptyField},
		{"year before 1886", func(v *models.Vehicle) { v.Year = 1885 }, KindOutOfRange},
		{"year after current year", func(v *models.Vehicle) { v.Year = testNow.Year() + 1 }, KindOutOfRange},
		{"mileage above update cap", func(v *models.Vehicle) { v.Mileage = 1000000 }, KindOutOfRange},
		{"empty status", func(v *models.Vehicle) { v.Status = "" }, KindEmptyField},
		{"unknown status", func(v *models.Vehicle) { v.Status = "parked" }, KindInvalidEnum},
		{"price above cap", func(v *models.Vehicle) { v.Price = 10000000 }, KindOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			ctx := context.Background()
			require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))

			v := validVehicle("CH001")
			tc.mutate(v)
			requireKind(t, s.UpdateVehicle(ctx, v), tc.kind)
		})
	}
}

func TestUpdateVehicleUnknownChassisNumber(t *testing.T) {
	s := newTestService(t)
	requireKind(t, s.UpdateVehicle(context.Background(), validVehicle("CH404")), KindNotFound)
}

func TestUpdateVehicleAcceptsCurrentYear(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))

	v := validVehicle("CH001")
	v.Year = testNow.Year()
	assert.NoError(t, s.UpdateVehicle(ctx, v))
}

// The insert and update paths intentionally carry different caps: insert
// allows mileage up to 9,999,999 and year up to 9999, update stops at 999,999
// and the current calendar year. This documents the asymmetry rather than
// assuming one of the two bounds is a bug.
func TestInsertUpdateBoundAsymmetry(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	highMileage := validVehicle("CH001")
	highMileage.Mileage = 5000000
	require.NoError(t, s.AddVehicle(ctx, highMileage))

	v := validVehicle("CH001")
	v.Mileage = 5000000
	requireKind(t, s.UpdateVehicle(ctx, v), KindOutOfRange)

	futureYear := validVehicle("CH002")
	futureYear.Year = 9999
	require.NoError(t, s.AddVehicle(ctx, futureYear))

	v2 := validVehicle("CH002")
	v2.Year = 9999
	requireKind(t, s.UpdateVehicle(ctx, v2), KindOutOfRange)
}

func TestDeleteVehicle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))
	require.NoError(t, s.DeleteVehicle(ctx, "CH001"))

	_, err := s.GetVehicleByChassisNumber(ctx, "CH001")
	requireKind(t, err, KindNotFound)

	all, err := s.GetAllVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteVehicleUnknownChassisNumber(t *testing.T) {
	s := newTestService(t)
	requireKind(t, s.DeleteVehicle(context.Background(), "CH404"), KindNotFound)
}

func TestDeleteVehicleEmptyChassisNumber(t *testing.T) {
	s := newTestService(t)
	requireKind(t, s.DeleteVehicle(context.Background(), ""), KindEmptyField)
}

func TestSearchVehiclesFilterCorrectness(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	fixtures := []*models.Vehicle{
		{Make: "Toyota", Model: "Corolla", Year: 2015, Mileage: 80000, Price: 9000.0, ChassisNumber: "CH001", Status: "in_stock"},
		{Make: "Toyota", Model: "Yaris", Year: 2021, Mileage: 20000, Price: 16000.0, ChassisNumber: "CH002", Status: "in_stock"},
		{Make: "Honda", Model: "Civic", Year: 2018, Mileage: 50000, Price: 14000.0, ChassisNumber: "CH003", Status: "SOLD"},
		{Make: "Honda", Model: "Jazz", Year: 2012, Mileage: 90000, Price: 7000.0, ChassisNumber: "CH004", Status: "in_stock"},
	}
	for _, v := range fixtures {
		require.NoError(t, s.AddVehicle(ctx, v))
	}

	got, err := s.SearchVehicles(ctx, databases.Filter{
		MinYear:    2010,
		MaxYear:    2020,
		MaxMileage: 9999999,
		MaxPrice:   9999999,
		Status:     "in_stock",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CH001", got[0].ChassisNumber)
	assert.Equal(t, "CH004", got[1].ChassisNumber)
}

func TestSearchVehiclesInvertedRanges(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	wide := databases.Filter{MaxYear: 9999, MaxMileage: 9999999, MaxPrice: 9999999}

	year := wide
	year.MinYear = 2020
	year.MaxYear = 2010
	_, err := s.SearchVehicles(ctx, year)
	requireKind(t, err, KindInvertedRange)

	mileage := wide
	mileage.MinMileage = 100
	mileage.MaxMileage = 10
	_, err = s.SearchVehicles(ctx, mileage)
	requireKind(t, err, KindInvertedRange)

	price := wide
	price.MinPrice = 5000
	price.MaxPrice = 1000
	_, err = s.SearchVehicles(ctx, price)
	requireKind(t, err, KindInvertedRange)
}

func TestSearchVehiclesInvalidStatus(t *testing.T) {
	s := newTestService(t)

	filter := databases.Filter{MaxYear: 9999, MaxMileage: 9999999, MaxPrice: 9999999, Status: "broken"}
	_, err := s.SearchVehicles(context.Background(), filter)
	requireKind(t, err, KindInvalidEnum)
}

// the end-to-end dealership scenario: add, reject duplicate, sell, remove
func TestDealershipScenario(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.AddVehicle(ctx, validVehicle("CH001")))

	dupe := validVehicle("CH001")
	dupe.Make = "Honda"
	err := s.AddVehicle(ctx, dupe)
	requireKind(t, err, KindDuplicateKey)

	sold := validVehicle("CH001")
	sold.Status = "sold"
	require.NoError(t, s.UpdateVehicle(ctx, sold))

	all, err := s.GetAllVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "CH001", all[0].ChassisNumber)
	assert.Equal(t, models.StatusSold, all[0].Status)

	require.NoError(t, s.DeleteVehicle(ctx, "CH001"))
	all, err = s.GetAllVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
