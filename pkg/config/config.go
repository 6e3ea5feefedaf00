package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	ContentRoot      = "./content"
	ContentExtension = "md"
	MediaDir         = "./media"
	MediaURLPath     = "/media"
	UsersDir         = "./users"

	SiteURL    = "http://localhost:8080"
	ListenAddr = ":8080"
	AppEnv     = "production"

	// EntryTimestamps controls whether date-ordered folders get a
	// time-of-day component in their filename prefix.
	EntryTimestamps = false

	// Names of the custom fields that smuggle the canonical link and the
	// author through the wire payload. Read once at dispatch and carried on
	// the per-request session, never consulted mid-request.
	LinkCustomField   = "titlelink"
	AuthorCustomField = "author"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	ContentRoot = getEnv("CONTENT_ROOT", "./content")
	ContentExtension = getEnv("CONTENT_EXTENSION", "md")
	MediaDir = getEnv("MEDIA_DIR", "./media")
	UsersDir = getEnv("USERS_DIR", "./users")

	SiteURL = getEnv("SITE_URL", "http://localhost:8080")
	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	AppEnv = getEnv("APP_ENV", "production")

	LinkCustomField = getEnv("LINK_CUSTOM_FIELD", "titlelink")
	AuthorCustomField = getEnv("AUTHOR_CUSTOM_FIELD", "author")

	if ts := os.Getenv("ENTRY_TIMESTAMPS"); ts != "" {
		if val, err := strconv.ParseBool(ts); err == nil {
			EntryTimestamps = val
		}
	}
}

// EndpointURL is the absolute XML-RPC endpoint advertised to clients.
func EndpointURL() string {
	return SiteURL + "/xmlrpc/api"
}
