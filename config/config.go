// Package config provides application configuration loaded from the
// environment, with embedded name/version metadata.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

func init() {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("MB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MB_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("MB_LISTEN")
	if listen == "" {
		listen = ":3005"
	}
	return listen
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("MB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("MB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetWebDomain returns the serving domain to validate Host headers against.
// Empty disables validation.
func GetWebDomain() string {
	return os.Getenv("MB_WEB_DOMAIN")
}

// GetSessionSecret returns the key used to sign session cookies.
func GetSessionSecret() string {
	secret := os.Getenv("MB_SESSION_SECRET")
	if secret == "" {
		secret = "minibook-insecure-dev-secret"
	}
	return secret
}

func GetSessionCookieName() string {
	cookie := os.Getenv("MB_SESSION_COOKIE")
	if cookie == "" {
		cookie = "minibook"
	}
	return cookie
}

// GetMaxUsers returns the global cap on registered accounts.
func GetMaxUsers() int {
	return getEnvInt("MB_MAX_USERS", 3)
}

// GetMaxPostsPerUser returns how many posts a single user may hold at once.
func GetMaxPostsPerUser() int {
	return getEnvInt("MB_MAX_POSTS_PER_USER", 3)
}

func GetImageHostURL() string {
	url := os.Getenv("MB_IMAGE_HOST_URL")
	if url == "" {
		url = "https://api.imagehost.example/v1"
	}
	return url
}

func GetImageHostKey() string {
	return os.Getenv("MB_IMAGE_HOST_KEY")
}

// GetImageHostFolder returns the logical folder uploads are filed under on
// the image host.
func GetImageHostFolder() string {
	folder := os.Getenv("MB_IMAGE_HOST_FOLDER")
	if folder == "" {
		folder = "minibook"
	}
	return folder
}

// GetUploadStagingDir returns the directory multipart uploads are staged in
// before being forwarded to the image host.
func GetUploadStagingDir() string {
	dir := os.Getenv("MB_UPLOAD_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return dir
}

// GetDefaultProfilePhoto returns the placeholder avatar URL used when signup
// supplies no photo.
func GetDefaultProfilePhoto() string {
	photo := os.Getenv("MB_DEFAULT_PHOTO")
	if photo == "" {
		photo = "https://api.imagehost.example/static/default-avatar.png"
	}
	return photo
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
