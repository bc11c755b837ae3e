package mongodb

import (
	"net"
	"net/url"
	"strconv"
)

// ConnectionString returns the URI the connection service connects to.
//
// Credentials are percent-encoded, the host defaults to DefaultHost and the port to DefaultPort.
func ConnectionString(cfg Config) string {
	if cfg.Localhost {
		return LocalURI
	}
	return connectionURL(cfg).String()
}

// RedactedConnectionString is ConnectionString with the password masked, safe to log.
func RedactedConnectionString(cfg Config) string {
	if cfg.Localhost {
		return LocalURI
	}
	return connectionURL(cfg).Redacted()
}

func connectionURL(cfg Config) *url.URL {
	host := DefaultHost
	if cfg.Host != nil && *cfg.Host != "" {
		host = *cfg.Host
	}
	port := DefaultPort
	if cfg.Port != nil {
		port = *cfg.Port
	}

	u := &url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + cfg.DBName,
	}
	if cfg.Auth != nil {
		u.User = url.UserPassword(cfg.Auth.Username, cfg.Auth.Password)
	}
	return u
}
