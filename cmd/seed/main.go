package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath, "server")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.Logging, cfg.App)

	db, err := database.Connect(cfg.Database.URL, logger, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		logger.Fatal().Err(err).Msg("DB connection failed")
	}

	logger.Info().Msg("running migrations")
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	if err := db.Transaction(seed); err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}
	logger.Info().Msg("seed complete")
}

func seed(db *gorm.DB) error {
	// Child tables first so foreign keys never dangle.
	for _, table := range []string{"comments", "bookings", "items", "requests", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	// ================== USERS ==================
	names := []string{"Asel", "Bekzat", "Dina", "Yerlan"}
	users := make([]domain.User, 0, len(names))
	for _, name := range names {
		u := domain.User{
			Name:  name,
			Email: fmt.Sprintf("%s@shareit.local", strings.ToLower(name)),
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("create user %s: %w", name, err)
		}
		users = append(users, u)
	}

	now := time.Now().UTC()

	// ================== REQUESTS ==================
	ladderReq := domain.Request{
		Description: "Looking for a tall ladder for a weekend",
		RequesterID: users[2].ID,
		Created:     now.Add(-72 * time.Hour),
	}
	if err := db.Create(&ladderReq).Error; err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	// ================== ITEMS ==================
	items := []domain.Item{
		{Name: "Cordless drill", Description: "18V drill with two batteries", Available: true, OwnerID: users[0].ID},
		{Name: "Tent", Description: "Four person camping tent", Available: true, OwnerID: users[0].ID},
		{Name: "Ladder", Description: "Aluminium ladder, 3 meters", Available: true, OwnerID: users[1].ID, RequestID: &ladderReq.ID},
		{Name: "Projector", Description: "Full HD projector with HDMI cable", Available: false, OwnerID: users[3].ID},
	}
	for i := range items {
		if err := db.Omit("Owner", "Request").Create(&items[i]).Error; err != nil {
			return fmt.Errorf("create item %s: %w", items[i].Name, err)
		}
	}

	// ================== BOOKINGS ==================
	// One booking per status, spread over past, current and future periods.
	bookings := []domain.Booking{
		{Start: now.AddDate(0, 0, -5), End: now.AddDate(0, 0, -3), ItemID: items[0].ID, BookerID: users[2].ID, Status: domain.BookingApproved},
		{Start: now.Add(-2 * time.Hour), End: now.Add(22 * time.Hour), ItemID: items[1].ID, BookerID: users[1].ID, Status: domain.BookingApproved},
		{Start: now.AddDate(0, 0, 2), End: now.AddDate(0, 0, 4), ItemID: items[0].ID, BookerID: users[1].ID, Status: domain.BookingWaiting},
		{Start: now.AddDate(0, 0, 3), End: now.AddDate(0, 0, 5), ItemID: items[2].ID, BookerID: users[0].ID, Status: domain.BookingRejected},
		{Start: now.AddDate(0, 0, 7), End: now.AddDate(0, 0, 8), ItemID: items[2].ID, BookerID: users[3].ID, Status: domain.BookingCanceled},
	}
	for i := range bookings {
		bookings[i].Start = bookings[i].Start.Truncate(time.Hour)
		bookings[i].End = bookings[i].End.Truncate(time.Hour)
		if err := db.Omit("Item", "Booker").Create(&bookings[i]).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
	}

	// ================== COMMENTS ==================
	// The drill's finished approved rental lets its booker comment.
	comment := domain.Comment{
		Text:     "Worked great, batteries lasted all day",
		ItemID:   items[0].ID,
		AuthorID: users[2].ID,
		Created:  now.AddDate(0, 0, -2),
	}
	if err := db.Omit("Item", "Author").Create(&comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}
