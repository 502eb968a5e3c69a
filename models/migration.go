package models

import (
	"log"

	"github.com/mmdatafocus/recon_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Report{},
		&Delivery{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
