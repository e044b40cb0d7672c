package cmd

// Config carries the runtime settings read from the environment.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	LockTimeoutMs     int
	OverScanTolerance float64
}
