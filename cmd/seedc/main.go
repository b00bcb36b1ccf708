package main

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	SetVersionInfo(version, commit, date)
	if err := Execute(); err != nil {
		fatalf("error: %v", err)
	}
}
