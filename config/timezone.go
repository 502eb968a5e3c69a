package config

import (
	"log"
	"os"
	"time"
)

var displayLocation *time.Location

// DisplayLocation is the zone used for parsing upload date strings and
// rendering export dates. It is passed explicitly into the date-handling
// code rather than living as process-global state.
func DisplayLocation() *time.Location {
	return displayLocation
}

func init() {
	tz := os.Getenv("DISPLAY_TIMEZONE")
	if tz == "" {
		tz = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("invalid DISPLAY_TIMEZONE %q: %v; falling back to UTC", tz, err)
		loc = time.UTC
	}
	displayLocation = loc
}
