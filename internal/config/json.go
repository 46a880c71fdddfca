package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		UserID  string `json:"user_id"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		BaseURL           string   `json:"base_url"`
		Session           string   `json:"session"`
		RequestTimeout    Duration `json:"request_timeout"`
		MaxRetries        int      `json:"max_retries"`
		RequestsPerSecond float64  `json:"requests_per_second"`
	} `json:"remote,omitempty"`

	Sync struct {
		MaxPages           int      `json:"max_pages"`
		EmptyPageThreshold int      `json:"empty_page_threshold"`
		PageRetryBudget    int      `json:"page_retry_budget"`
		PageCooldown       Duration `json:"page_cooldown"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			UserID:  jsonCfg.App.UserID,
			Version: jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Remote: Remote{
			BaseURL:           jsonCfg.Remote.BaseURL,
			Session:           jsonCfg.Remote.Session,
			RequestTimeout:    time.Duration(jsonCfg.Remote.RequestTimeout),
			MaxRetries:        jsonCfg.Remote.MaxRetries,
			RequestsPerSecond: jsonCfg.Remote.RequestsPerSecond,
		},
		Sync: Sync{
			MaxPages:           jsonCfg.Sync.MaxPages,
			EmptyPageThreshold: jsonCfg.Sync.EmptyPageThreshold,
			PageRetryBudget:    jsonCfg.Sync.PageRetryBudget,
			PageCooldown:       time.Duration(jsonCfg.Sync.PageCooldown),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
