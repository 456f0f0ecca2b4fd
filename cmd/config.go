package cmd

// Config carries the environment configuration for the dispatch service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Seed values for the platform settings row. Used only when the row
	// does not exist yet; existing values are left untouched.
	MinimumBalance    float64
	CommissionPercent float64
}
