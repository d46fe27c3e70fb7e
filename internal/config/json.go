package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		MinPassphraseScore int      `json:"min_passphrase_score"`
		LogLevel           string   `json:"log_level"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Crypto struct {
		Iterations int `json:"iterations"`
		SaltLength int `json:"salt_length"`
	} `json:"crypto,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Ledger struct {
		TestnetURL     string   `json:"testnet_url"`
		MainnetURL     string   `json:"mainnet_url"`
		FriendbotURL   string   `json:"friendbot_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"ledger,omitempty"`

	Cache struct {
		RedisAddress      string   `json:"redis_address"`
		RedisPassword     string   `json:"redis_password"`
		RedisDB           int      `json:"redis_db"`
		MaxFailedAttempts int      `json:"max_failed_attempts"`
		LockoutWindow     Duration `json:"lockout_window"`
	} `json:"cache,omitempty"`

	Conversion struct {
		QuoteTTL      Duration `json:"quote_ttl"`
		NominalFee    int64    `json:"nominal_fee"`
		EstimatedTime Duration `json:"estimated_time"`
	} `json:"conversion,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		TaskTimeout  Duration `json:"task_timeout"`
		AuditTimeout Duration `json:"audit_timeout"`
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
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			MinPassphraseScore: jsonCfg.App.MinPassphraseScore,
			LogLevel:           jsonCfg.App.LogLevel,
			Version:            jsonCfg.App.Version,
		},
		Crypto: Crypto{
			Iterations: jsonCfg.Crypto.Iterations,
			SaltLength: jsonCfg.Crypto.SaltLength,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Ledger: Ledger{
			TestnetURL:     jsonCfg.Ledger.TestnetURL,
			MainnetURL:     jsonCfg.Ledger.MainnetURL,
			FriendbotURL:   jsonCfg.Ledger.FriendbotURL,
			RequestTimeout: time.Duration(jsonCfg.Ledger.RequestTimeout),
		},
		Cache: Cache{
			RedisAddress:      jsonCfg.Cache.RedisAddress,
			RedisPassword:     jsonCfg.Cache.RedisPassword,
			RedisDB:           jsonCfg.Cache.RedisDB,
			MaxFailedAttempts: jsonCfg.Cache.MaxFailedAttempts,
			LockoutWindow:     time.Duration(jsonCfg.Cache.LockoutWindow),
		},
		Conversion: Conversion{
			QuoteTTL:      time.Duration(jsonCfg.Conversion.QuoteTTL),
			NominalFee:    jsonCfg.Conversion.NominalFee,
			EstimatedTime: time.Duration(jsonCfg.Conversion.EstimatedTime),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			TaskTimeout:  time.Duration(jsonCfg.Workers.TaskTimeout),
			AuditTimeout: time.Duration(jsonCfg.Workers.AuditTimeout),
		},
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
