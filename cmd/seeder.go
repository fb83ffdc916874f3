package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	userDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin user and sample directory and inventory rows.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		seedAdmin(db, cfg.Security.BCryptCost)
		seedDirectory(db)
		seedItems(db)

		fmt.Println("Seeding complete")
	},
}

func seedAdmin(db *gorm.DB, bcryptCost int) {
	var count int64
	if err := db.Model(&userDatamodel.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		log.Fatalf("failed to check admin user: %v", err)
	}
	if count > 0 {
		fmt.Println("admin user already exists")
		return
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := userDatamodel.User{
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         userDatamodel.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to insert admin user: %v", err)
	}
	fmt.Println("Seeded admin user: admin / admin123 (change the password)")
}

func seedDirectory(db *gorm.DB) {
	departments := []string{"IT", "Finance", "Operations"}
	for _, name := range departments {
		var count int64
		if err := db.Model(&directoryDatamodel.Department{}).Where("name = ?", name).Count(&count).Error; err != nil {
			log.Fatalf("failed to check department %s: %v", name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&directoryDatamodel.Department{Name: name}).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", name, err)
		}
		fmt.Println("Seeded department:", name)
	}

	var itDept directoryDatamodel.Department
	if err := db.Where("name = ?", "IT").First(&itDept).Error; err != nil {
		log.Fatalf("failed to look up IT department: %v", err)
	}

	empCode := "E-0001"
	var count int64
	if err := db.Model(&directoryDatamodel.Person{}).Where("emp_code = ?", empCode).Count(&count).Error; err != nil {
		log.Fatalf("failed to check sample person: %v", err)
	}
	if count == 0 {
		person := directoryDatamodel.Person{
			EmpCode:      &empCode,
			FullName:     "Sample Person",
			DepartmentID: &itDept.ID,
			Status:       directoryDatamodel.PersonStatusActive,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&person).Error; err != nil {
			log.Fatalf("failed to insert sample person: %v", err)
		}
		fmt.Println("Seeded person:", person.FullName)
	}
}

func seedItems(db *gorm.DB) {
	dept := "IT"
	createdBy := "seed"
	samples := []itemDatamodel.Item{
		{ItemID: "IT-0001", Name: "Dell Latitude 5440 Laptop", Quantity: 1, Department: &dept},
		{ItemID: "IT-0002", Name: "HP LaserJet Printer", Quantity: 1, Department: &dept},
		{ItemID: "IT-0003", Name: "APC UPS 1500VA", Quantity: 1, Department: &dept},
	}

	for _, sample := range samples {
		var count int64
		if err := db.Model(&itemDatamodel.Item{}).Where("item_id = ?", sample.ItemID).Count(&count).Error; err != nil {
			log.Fatalf("failed to check item %s: %v", sample.ItemID, err)
		}
		if count > 0 {
			continue
		}
		sample.CreatedBy = &createdBy
		sample.CreatedAt = time.Now()
		if err := db.Create(&sample).Error; err != nil {
			log.Fatalf("failed to insert item %s: %v", sample.ItemID, err)
		}
		fmt.Println("Seeded item:", sample.ItemID)
	}
}
