package constants

const (
	AppName            = "recite"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxHistoryItems bounds the review history; oldest entries are dropped first.
	MaxHistoryItems = 1000
)
