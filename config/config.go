package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

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
	logLevel := os.Getenv("BLOGD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BLOGD_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("BLOGD_LISTEN")
	if listen == "" {
		listen = "0.0.0.0"
	}
	return listen
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("BLOGD_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BLOGD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/blogd"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

// GetJWTSecret returns the configured token signing secret, or "" when the
// operator has not set one.
func GetJWTSecret() string {
	return os.Getenv("BLOGD_JWT_SECRET")
}
