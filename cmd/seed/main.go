package main

import (
	"fmt"
	"log"

	"busly/internal/buses"
	"busly/internal/shared/config"
	"busly/internal/shared/database"
	"busly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Busly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"passengers",
		"booking_seats",
		"bookings",
		"buses",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users and a sample fleet.
func (s *Seeder) SeedAll() error {
	adminID, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedBuses(adminID); err != nil {
		return fmt.Errorf("failed to seed buses: %w", err)
	}

	return nil
}

// SeedUsers creates an admin account and a couple of riders. Returns the
// admin's ID for fleet ownership.
func (s *Seeder) SeedUsers() (uuid.UUID, error) {
	fmt.Println("  Seeding users...")

	hash := func(plain string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	admin := users.User{
		FirstName: "Admin",
		LastName:  "Busly",
		Email:     "admin@busly.in",
		Password:  hash("Admin@123"),
		Role:      users.RoleAdmin,
	}
	if err := s.db.PostgreSQL.Create(&admin).Error; err != nil {
		return uuid.Nil, err
	}

	riders := []users.User{
		{FirstName: "Asha", LastName: "Kulkarni", Email: "asha@example.com", Password: hash("Rider@123"), Role: users.RoleUser},
		{FirstName: "Rahul", LastName: "Deshmukh", Email: "rahul@example.com", Password: hash("Rider@123"), Role: users.RoleUser},
	}
	for i := range riders {
		if err := s.db.PostgreSQL.Create(&riders[i]).Error; err != nil {
			return uuid.Nil, err
		}
	}

	fmt.Printf("  ✅ Seeded %d users (admin: admin@busly.in)\n", 1+len(riders))
	return admin.ID, nil
}

// SeedBuses creates a small fleet covering every layout type.
func (s *Seeder) SeedBuses(adminID uuid.UUID) error {
	fmt.Println("  Seeding buses...")

	fleet := []buses.Bus{
		{
			BusName:         "Shivneri Express",
			BusNumber:       "MH-12-AB-1234",
			BusType:         buses.BusTypeACSeater,
			TotalSeats:      40,
			Price:           550,
			Source:          "Pune",
			Destination:     "Mumbai",
			DepartureTime:   "08:30",
			ArrivalTime:     "12:00",
			JourneyDuration: "3h 30m",
			Description:     "Morning intercity service via the expressway",
			Amenities:       buses.Amenities{HasAC: true, HasCharging: true, HasWater: true},
			BoardingPoints:  buses.StopList{{Name: "Wakad", Time: "08:30"}, {Name: "Aundh", Time: "08:50"}},
			DroppingPoints:  buses.StopList{{Name: "Dadar", Time: "11:30"}, {Name: "CST", Time: "12:00"}},
			CreatedBy:       adminID,
		},
		{
			BusName:         "Neeta Sleeper",
			BusNumber:       "MH-14-CD-5678",
			BusType:         buses.BusTypeNonACSleeper,
			TotalSeats:      30,
			Price:           700,
			Source:          "Pune",
			Destination:     "Bangalore",
			DepartureTime:   "20:00",
			ArrivalTime:     "08:00",
			JourneyDuration: "12h",
			Description:     "Overnight sleeper on the NH48 corridor",
			Amenities:       buses.Amenities{HasCharging: true, HasWater: true, HasFirstAid: true},
			BoardingPoints:  buses.StopList{{Name: "Swargate", Time: "20:00"}},
			DroppingPoints:  buses.StopList{{Name: "Majestic", Time: "08:00"}},
			CreatedBy:       adminID,
		},
		{
			BusName:         "Deluxe Night Rider",
			BusNumber:       "MH-01-EF-9012",
			BusType:         buses.BusTypeDeluxeCombo,
			TotalSeats:      36,
			SeaterPrice:     400,
			SleeperPrice:    700,
			Source:          "Mumbai",
			Destination:     "Goa",
			DepartureTime:   "21:00",
			ArrivalTime:     "09:30",
			JourneyDuration: "12h 30m",
			Description:     "Combo coach: lower deck seaters, upper deck sleepers",
			Amenities:       buses.Amenities{HasAC: true, HasCharging: true, HasWifi: true, HasWater: true},
			BoardingPoints:  buses.StopList{{Name: "Borivali", Time: "21:00"}, {Name: "Vashi", Time: "21:45"}},
			DroppingPoints:  buses.StopList{{Name: "Mapusa", Time: "09:00"}, {Name: "Panaji", Time: "09:30"}},
			CreatedBy:       adminID,
		},
	}

	for i := range fleet {
		if err := fleet[i].Validate(); err != nil {
			return fmt.Errorf("invalid seed bus %s: %w", fleet[i].BusNumber, err)
		}
		if err := s.db.PostgreSQL.Create(&fleet[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  ✅ %s (%s) %s → %s\n",
			fleet[i].BusName, fleet[i].BusType, fleet[i].Source, fleet[i].Destination)
	}

	return nil
}
