package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"staychain/internal/rooms"
	"staychain/internal/shared/config"
	"staychain/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Staychain Database Seeder...")

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
	if err := seeder.SeedRooms(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"guest_profiles",
		"reservations",
		"booking_summaries",
		"rooms",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedRooms inserts a small demo catalog through the repository so room
// identifiers are assigned the same way the API assigns them.
func (s *Seeder) SeedRooms() error {
	repo := rooms.NewRepository(s.db.GetPostgreSQL())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog := []rooms.Room{
		{
			Name:          "Harbor View Suite",
			Description:   "Corner suite with a wraparound balcony over the marina.",
			Images:        []string{"https://images.staychain.io/rooms/harbor-view-1.jpg", "https://images.staychain.io/rooms/harbor-view-2.jpg"},
			PricePerNight: 0.12,
			Beds:          1,
			MaxGuests:     2,
		},
		{
			Name:          "Garden Twin",
			Description:   "Ground-floor twin room opening onto the courtyard garden.",
			Images:        []string{"https://images.staychain.io/rooms/garden-twin-1.jpg"},
			PricePerNight: 0.06,
			Beds:          2,
			MaxGuests:     2,
		},
		{
			Name:          "Family Loft",
			Description:   "Split-level loft with two bedrooms and a kitchenette.",
			Images:        []string{"https://images.staychain.io/rooms/family-loft-1.jpg", "https://images.staychain.io/rooms/family-loft-2.jpg", "https://images.staychain.io/rooms/family-loft-3.jpg"},
			PricePerNight: 0.09,
			Beds:          3,
			MaxGuests:     5,
		},
		{
			Name:          "Compact Single",
			Description:   "Budget single near the elevator, desk and fast wifi.",
			Images:        []string{"https://images.staychain.io/rooms/compact-single-1.jpg"},
			PricePerNight: 0.03,
			Beds:          1,
			MaxGuests:     1,
		},
	}

	for i := range catalog {
		if err := repo.CreateRoom(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("failed to seed room %q: %w", catalog[i].Name, err)
		}
		fmt.Printf("   • room %d: %s\n", catalog[i].RoomID, catalog[i].Name)
	}

	return nil
}
