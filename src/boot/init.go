package boot

import (
	"os"
	"strings"

	"spenden/src/db"
	"spenden/src/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	conn := db.GetDb()

	err := conn.AutoMigrate(
		&models.Donation{},
		&models.AdminUser{},
	)
	if err != nil {
		log.WithError(err).Fatal("error migration")
	}
	return conn
}

// SeedAdmins upserts the allow-list from the comma-separated ADMIN_EMAILS
// variable. Existing rows are kept; removal stays a manual operation.
func SeedAdmins(conn *gorm.DB) {
	raw := os.Getenv("ADMIN_EMAILS")
	if raw == "" {
		return
	}
	for _, email := range strings.Split(raw, ",") {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		var existing models.AdminUser
		conn.Model(&models.AdminUser{}).Where(&models.AdminUser{Email: email}).Find(&existing)
		if existing.ID > 0 {
			continue
		}
		if err := conn.Create(&models.AdminUser{Email: email}).Error; err != nil {
			log.WithError(err).WithField("email", email).Error("Could not seed admin user")
		}
	}
}
