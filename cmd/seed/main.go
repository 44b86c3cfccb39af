package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akumarujon/imf-gadget-api/internal/config"
	"github.com/akumarujon/imf-gadget-api/internal/db"
	"github.com/akumarujon/imf-gadget-api/internal/model"
	"github.com/akumarujon/imf-gadget-api/internal/repository"
)

// starterArmory is inserted once on an empty database.
var starterArmory = []model.Gadget{
	{Name: "Grappling Hook", Codename: "The Nightingale", Status: model.StatusAvailable},
	{Name: "Exploding Gum", Codename: "The Kraken", Status: model.StatusAvailable},
	{Name: "Face Mask Printer", Codename: "The Phantom", Status: model.StatusDeployed},
	{Name: "Laser Watch", Codename: "The Mirage", Status: model.StatusAvailable},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Gadget{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	gadgetRepo := repository.NewGadgetRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedGadgets(ctx, gadgetRepo)
	if err != nil {
		log.Fatalf("Failed to seed gadgets: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New gadgets created: %d", created)
	log.Printf("  - Existing gadgets skipped: %d", skipped)
}

// seedAdmin creates the admin user from SEED_ADMIN_USER / SEED_ADMIN_PASSWORD
// if it doesn't exist yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	username := os.Getenv("SEED_ADMIN_USER")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("SEED_ADMIN_USER/SEED_ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		log.Printf("Admin user %q already exists", username)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, &model.User{Username: username, PasswordHash: string(hash)}); err != nil {
		return err
	}
	log.Printf("Admin user %q created", username)
	return nil
}

// seedGadgets inserts the starter armory, skipping codenames already present.
func seedGadgets(ctx context.Context, repo repository.GadgetRepository) (created int, skipped int, err error) {
	for _, gadget := range starterArmory {
		_, err := repo.FindByCodename(ctx, gadget.Codename)
		if err == nil {
			skipped++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, skipped, err
		}
		if err := repo.Create(ctx, &gadget); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
