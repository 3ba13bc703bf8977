package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile     string
	LogLevel    string
	LogFormat   string
	G2PProvider string
	StripNiqqud bool
	Threshold   float64

	// Analysis flags
	Format     string // "text" or "json"
	BatchFile  string
	Workers    int
	ExportDSN   string
	ListModels  bool
	ListReports bool
	ShowReport  string

	// Serve flags
	Host string
	Port int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:    "info",
		LogFormat:   "text",
		G2PProvider: "none",
		Threshold:   0.4,
		Format:      "text",
		Workers:     4,
		Host:        "0.0.0.0",
		Port:        5000,
	}
}
