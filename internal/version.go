package internal

// Version is the rapwiz release, reported by --version and the HTTP API.
var Version = "1.0.0"
