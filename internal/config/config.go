package config

import (
	"os"
	"strings"
)

const (
	AppName    = "Newsdesk"
	AppVersion = "1.0.0"
)

// UserAgent identifies feed and resource requests made by the server.
var UserAgent = AppName + "/" + AppVersion

type Config struct {
	Addr            string
	FeedURL         string
	ImageHosts      []string // hosts whose images are referenced directly instead of proxied
	PlaceholderBase string
	FaviconBase     string
	StaticDir       string
	LogLevel        string
}

func Load() Config {
	addr := os.Getenv("NEWSDESK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	placeholderBase := os.Getenv("NEWSDESK_PLACEHOLDER_BASE")
	if placeholderBase == "" {
		placeholderBase = "https://picsum.photos/seed"
	}
	faviconBase := os.Getenv("NEWSDESK_FAVICON_BASE")
	if faviconBase == "" {
		faviconBase = "https://www.google.com/s2/favicons"
	}
	logLevel := os.Getenv("NEWSDESK_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:            addr,
		FeedURL:         os.Getenv("NEWSDESK_FEED_URL"),
		ImageHosts:      splitHosts(os.Getenv("NEWSDESK_IMAGE_HOSTS")),
		PlaceholderBase: strings.TrimRight(placeholderBase, "/"),
		FaviconBase:     faviconBase,
		StaticDir:       os.Getenv("NEWSDESK_STATIC_DIR"),
		LogLevel:        logLevel,
	}
}

func splitHosts(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			hosts = append(hosts, p)
		}
	}
	return hosts
}
