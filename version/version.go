package version

// Set at build time with
//
//	-ldflags "-X github.com/purkka/radixsort/version.Version=... -X github.com/purkka/radixsort/version.Date=..."
var (
	Version = "dev"
	Date    = ""
)
