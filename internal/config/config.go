// Package config loads the snapmeans CLI configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// StorageType selects the blob store datasets and reports live in.
type StorageType string

const (
	StorageLocal StorageType = "local"
	StorageMinIO StorageType = "minio"
	StorageS3    StorageType = "s3"
)

// IsValid returns true if the storage type is a recognized value.
func (t StorageType) IsValid() bool {
	switch t {
	case StorageLocal, StorageMinIO, StorageS3:
		return true
	default:
		return false
	}
}

type Config struct {
	Input      InputConfig      `json:"input"`
	Clustering ClusteringConfig `json:"clustering"`
	Resources  ResourceConfig   `json:"resources"`
	Storage    StorageConfig    `json:"storage"`
	Report     ReportConfig     `json:"report"`
	Log        LogConfig        `json:"log"`
	// MetricsFile receives Prometheus text-format metrics after a run.
	// Empty disables metrics export.
	MetricsFile string `json:"metrics_file,omitempty"`
}

// InputConfig describes the dataset and how its fields become numbers.
type InputConfig struct {
	Path        string             `json:"path"`
	Delimiter   string             `json:"delimiter"`
	Header      bool               `json:"header"`
	SkipColumns []string           `json:"skip_columns"`
	SkipIndices []int              `json:"skip_indices,omitempty"`
	Categories  map[string]float64 `json:"categories"`
	// Normalize rescales every column into [0,1] before clustering.
	Normalize bool `json:"normalize"`
}

// DelimiterRune returns the field delimiter, ',' when unset.
func (c InputConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	if c.Delimiter == `\t` {
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}

// ClusteringConfig holds the sweep and per-run parameters.
type ClusteringConfig struct {
	Ks       []int `json:"ks"`
	Restarts int   `json:"restarts"`
	// Seed is the base seed of the sweep. Nil draws one from the clock.
	Seed          *int64  `json:"seed,omitempty"`
	Threshold     float64 `json:"threshold"`
	MaxIterations int     `json:"max_iterations"`
	Workers       int     `json:"workers"`
	// EmptyClusters is "retain" (default) or "fail".
	EmptyClusters string `json:"empty_clusters"`
}

// ResourceConfig bounds concurrent runs and read throughput.
type ResourceConfig struct {
	// MaxConcurrentRuns caps runs in flight. 0 means one.
	MaxConcurrentRuns int64 `json:"max_concurrent_runs"`
	// MemoryLimitMB caps per-run working memory. 0 means no limit.
	MemoryLimitMB int64 `json:"memory_limit_mb,omitempty"`
	// IOLimitKBPerSec caps dataset read throughput. 0 means no limit.
	IOLimitKBPerSec int64 `json:"io_limit_kb_per_sec,omitempty"`
}

type StorageConfig struct {
	Type      StorageType `json:"type"`
	Endpoint  string      `json:"endpoint"`
	Bucket    string      `json:"bucket"`
	Prefix    string      `json:"prefix"`
	AccessKey string      `json:"access_key"`
	SecretKey string      `json:"secret_key"`
	Region    string      `json:"region"`
	UseSSL    bool        `json:"use_ssl"`
	RootPath  string      `json:"root_path"`
}

type ReportConfig struct {
	// Path is the report blob name. Empty prints the summary only.
	Path  string `json:"path"`
	Codec string `json:"codec"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // text or json
}

// Default returns the configuration of the customer-segmentation study the
// tool was first written for: an id column, a Male/Female column and
// cluster counts 3, 5 and 10 with ten restarts each.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Delimiter:   ",",
			Header:      true,
			SkipColumns: []string{"CustomerID"},
			Categories:  map[string]float64{"Male": 0, "Female": 1},
			Normalize:   true,
		},
		Clustering: ClusteringConfig{
			Ks:            []int{3, 5, 10},
			Restarts:      10,
			Threshold:     0.001,
			MaxIterations: 100,
			Workers:       1,
			EmptyClusters: "retain",
		},
		Resources: ResourceConfig{
			MaxConcurrentRuns: 1,
		},
		Storage: StorageConfig{
			Type:     StorageLocal,
			RootPath: ".",
		},
		Report: ReportConfig{
			Codec: "go-json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a JSON config file on top of Default and applies SNAPMEANS_*
// environment overrides. An empty path falls back to SNAPMEANS_CONFIG, and
// to defaults only when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SNAPMEANS_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := gojson.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if env := os.Getenv("SNAPMEANS_STORAGE_TYPE"); env != "" {
		cfg.Storage.Type = StorageType(env)
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_ENDPOINT"); env != "" {
		cfg.Storage.Endpoint = env
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_BUCKET"); env != "" {
		cfg.Storage.Bucket = env
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_ACCESS_KEY"); env != "" {
		cfg.Storage.AccessKey = env
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_SECRET_KEY"); env != "" {
		cfg.Storage.SecretKey = env
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_REGION"); env != "" {
		cfg.Storage.Region = env
	}
	if env := os.Getenv("SNAPMEANS_STORAGE_USE_SSL"); env != "" {
		useSSL, err := strconv.ParseBool(env)
		if err != nil {
			return nil, fmt.Errorf("SNAPMEANS_STORAGE_USE_SSL: %w", err)
		}
		cfg.Storage.UseSSL = useSSL
	}
	if env := os.Getenv("SNAPMEANS_LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}
	if env := os.Getenv("SNAPMEANS_WORKERS"); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return nil, fmt.Errorf("SNAPMEANS_WORKERS: %w", err)
		}
		cfg.Clustering.Workers = n
	}

	return cfg, nil
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Clustering.Ks) == 0 {
		errs = append(errs, errors.New("clustering.ks must not be empty"))
	}
	for _, k := range c.Clustering.Ks {
		if k <= 0 {
			errs = append(errs, fmt.Errorf("clustering.ks: %d is not positive", k))
		}
	}
	if c.Clustering.Restarts <= 0 {
		errs = append(errs, fmt.Errorf("clustering.restarts: %d is not positive", c.Clustering.Restarts))
	}
	switch c.Clustering.EmptyClusters {
	case "", "retain", "fail":
	default:
		errs = append(errs, fmt.Errorf("clustering.empty_clusters: unknown policy %q", c.Clustering.EmptyClusters))
	}
	if !c.Storage.Type.IsValid() {
		errs = append(errs, fmt.Errorf("storage.type: unknown type %q", c.Storage.Type))
	}
	if c.Storage.Type != StorageLocal && c.Storage.Bucket == "" {
		errs = append(errs, fmt.Errorf("storage.bucket is required for %s", c.Storage.Type))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseKs parses a comma separated list of cluster counts such as "3,5,10".
func ParseKs(s string) ([]int, error) {
	var ks []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid k %q: %w", field, err)
		}
		ks = append(ks, k)
	}
	if len(ks) == 0 {
		return nil, fmt.Errorf("no cluster counts in %q", s)
	}
	return ks, nil
}
