package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retention-window changelog retention window (e.g., "720h")
//	-page-limit incremental sync page cap
//	-lookback-window reconciliation lookback window
//	-prune-interval retention worker interval
//	-server-url sync server base URL (client side)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var retentionWindow time.Duration
	var pageLimit int
	var lookbackWindow time.Duration
	var pruneInterval time.Duration
	var clientServerURL string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&retentionWindow, "retention-window", 0, "Changelog retention window (e.g., 720h)")
	flag.IntVar(&pageLimit, "page-limit", 0, "Incremental sync page cap")
	flag.DurationVar(&lookbackWindow, "lookback-window", 0, "Reconciliation lookback window")
	flag.DurationVar(&pruneInterval, "prune-interval", 0, "Retention worker interval")
	flag.StringVar(&clientServerURL, "server-url", "", "Sync server base URL (client)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DBConfig{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			RetentionWindow: retentionWindow,
			PageLimit:       pageLimit,
			LookbackWindow:  lookbackWindow,
		},
		Adapter: Adapter{
			HTTPAddress:    clientServerURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			PruneInterval: pruneInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the address in "host:port" form, or an empty string when
// the flag was never set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set implements flag.Value. It accepts "[host]:[port]".
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found {
		return errors.New("need address in a form host:port")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.New("port must be an integer")
	}

	a.Host = host
	a.Port = port
	return nil
}
