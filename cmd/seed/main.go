package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"juniorpass/internal/database"
	"juniorpass/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "juniorpass.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM payment_requests")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM children")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM partners")
	db.Exec("DELETE FROM users")

	// ================== PARENTS ==================
	log.Println("Creating parents...")
	parents := []domain.User{}
	parentEmails := []string{"mei@gmail.com", "arjun@gmail.com", "sarah@outlook.sg"}
	for i, email := range parentEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("parent123"), bcrypt.DefaultCost)
		parent := domain.User{
			Email:         email,
			PasswordHash:  string(hash),
			Role:          domain.RoleParent,
			Name:          fmt.Sprintf("Parent %d", i+1),
			Phone:         fmt.Sprintf("+65 9123 45%02d", i+10),
			Credit:        100,
			EmailVerified: true,
		}
		db.Create(&parent)
		parents = append(parents, parent)
	}
	log.Printf("Parents created: %v / parent123 (100 credits each)", parentEmails)

	// ================== CHILDREN ==================
	log.Println("Creating children...")
	for i, parent := range parents {
		db.Create(&domain.Child{
			ParentID:  parent.ID,
			Name:      fmt.Sprintf("Child %d", i+1),
			BirthDate: time.Date(2017+i, time.March, 12, 0, 0, 0, 0, time.UTC),
			Gender:    []string{"F", "M", "F"}[i%3],
		})
	}

	// ================== PARTNERS ==================
	log.Println("Creating partners...")
	partners := []domain.Partner{}
	partnerNames := []string{"Little Kickers SG", "Happy Notes Music", "Mindful Makers Lab"}
	for i, name := range partnerNames {
		partner := domain.Partner{
			Name:    name,
			Email:   fmt.Sprintf("partner%d@juniorpass.sg", i+1),
			Website: fmt.Sprintf("https://partner%d.example.sg", i+1),
			Credit:  0,
		}
		db.Create(&partner)
		partners = append(partners, partner)
	}

	// ================== LISTINGS ==================
	log.Println("Creating listings...")
	listings := []struct {
		Title    string
		Credit   int64
		AgeGroup string
	}{
		{"Toddler Football Intro", 20, "3-5"},
		{"Junior Piano Group", 35, "6-9"},
		{"Robotics Starter Camp", 60, "8-12"},
		{"Weekend Swim Squad", 25, "5-8"},
		{"Art and Clay Workshop", 15, "4-7"},
	}
	for i, l := range listings {
		db.Create(&domain.Listing{
			PartnerID:   partners[i%len(partners)].ID,
			Title:       l.Title,
			Description: "Trial-friendly class run by an approved vendor",
			Credit:      l.Credit,
			AgeGroup:    l.AgeGroup,
			Active:      true,
		})
	}

	log.Println("Seed complete")
}
