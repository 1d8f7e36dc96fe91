package buses

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return NewRepository(gormDB), mock
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	busID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "bus_name", "bus_number", "bus_type", "total_seats", "price", "source", "destination", "departure_time", "arrival_time"}).
		AddRow(busID.String(), "Shivneri Express", "MH-12-AB-1234", "AC Seater", 40, 550, "Pune", "Mumbai", "08:30", "12:00")

	mock.ExpectQuery(`SELECT (.+) FROM "buses" WHERE id = (.+)`).
		WithArgs(busID, 1).
		WillReturnRows(rows)

	bus, err := repo.GetByID(context.Background(), busID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if bus.BusNumber != "MH-12-AB-1234" {
		t.Errorf("expected bus number MH-12-AB-1234, got %s", bus.BusNumber)
	}
	if bus.TotalSeats != 40 {
		t.Errorf("expected 40 seats, got %d", bus.TotalSeats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	busID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "buses" WHERE id = (.+)`).
		WithArgs(busID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), busID)
	if !errors.Is(err, ErrBusNotFound) {
		t.Fatalf("expected ErrBusNotFound, got %v", err)
	}
}

func TestSearchByRoute(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"id", "bus_name", "source", "destination", "departure_time"}).
		AddRow(uuid.New().String(), "Shivneri Express", "Pune", "Mumbai", "08:30").
		AddRow(uuid.New().String(), "Neeta Travels", "Pune", "Mumbai", "22:15")

	mock.ExpectQuery(`SELECT (.+) FROM "buses" WHERE LOWER\(source\) = (.+) AND LOWER\(destination\) = (.+)`).
		WithArgs("pune", "mumbai").
		WillReturnRows(rows)

	fleet, err := repo.SearchByRoute(context.Background(), "  Pune ", "Mumbai")
	if err != nil {
		t.Fatalf("SearchByRoute returned error: %v", err)
	}
	if len(fleet) != 2 {
		t.Fatalf("expected 2 buses, got %d", len(fleet))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBusNumberExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buses" WHERE bus_number = (.+)`).
		WithArgs("MH-12-AB-1234").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.BusNumberExists(context.Background(), "MH-12-AB-1234")
	if err != nil {
		t.Fatalf("BusNumberExists returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected bus number to exist")
	}
}
