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
//	-user-id GeoGuessr account identifier for the periodic worker
//	-base-url GeoGuessr API base URL
//	-session _ncfa session cookie value
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-max-pages feed page cap for one sync run
//	-sync-interval periodic resync interval (e.g., "1h")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var userID string
	var baseURL string
	var session string
	var requestTimeout time.Duration
	var maxPages int
	var syncInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&userID, "user-id", "", "GeoGuessr account identifier")
	flag.StringVar(&baseURL, "base-url", "", "GeoGuessr API base URL")
	flag.StringVar(&session, "session", "", "GeoGuessr _ncfa session cookie value")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s, 1m)")
	flag.IntVar(&maxPages, "max-pages", 0, "Feed page cap for one sync run")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic resync interval (e.g., 1h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			UserID: userID,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Remote: Remote{
			BaseURL:        baseURL,
			Session:        session,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			MaxPages: maxPages,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
