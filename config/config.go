package config

import (
	"coach/pkg/types"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  *ServerConfig  `yaml:"server"`
	Planner *PlannerConfig `yaml:"planner"`
	Strava  *StravaConfig  `yaml:"strava"`
	Search  *SearchConfig  `yaml:"search"`
	Export  *ExportConfig  `yaml:"export"`
	Store   *StoreConfig   `yaml:"store"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type PlannerConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	PlanDays    int     `yaml:"planDays"`
	MaxTurns    int     `yaml:"maxTurns"`
}

type StravaConfig struct {
	EnvPrefix string `yaml:"envPrefix"`
	ApiUrl    string `yaml:"apiUrl"`
}

type SearchConfig struct {
	ApiUrl     string `yaml:"apiUrl"`
	MaxResults int    `yaml:"maxResults"`
}

type ExportConfig struct {
	OutputDir string `yaml:"outputDir"`
	S3Bucket  string `yaml:"s3Bucket"`  // optional, archive exports to S3 when set
	S3Region  string `yaml:"s3Region"`  // optional
}

type StoreConfig struct {
	SnapshotPath string `yaml:"snapshotPath"` // optional, persist plan records across restarts
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	// read YAML file
	var data []byte
	var err error

	yamlFiles := map[types.EnvName]string{
		types.EnvLocal: "coach.yaml",
		types.EnvDev:   "coach.dev.yaml",
		types.EnvProd:  "coach.prod.yaml",
	}
	fileName := yamlFiles[envName]
	data, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatalf("fail to load config file '%s': %v", fileName, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		log.Fatalf("fail to decode config file '%v': %v", fileName, err)
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8000
	}
	if config.Planner == nil {
		config.Planner = &PlannerConfig{}
	}
	if config.Planner.Model == "" {
		config.Planner.Model = "gpt-4o"
	}
	if config.Planner.Temperature == 0 {
		config.Planner.Temperature = 0.2
	}
	if config.Planner.PlanDays == 0 {
		config.Planner.PlanDays = 7
	}
	if config.Planner.MaxTurns == 0 {
		config.Planner.MaxTurns = 12
	}
	if config.Strava == nil {
		config.Strava = &StravaConfig{}
	}
	if config.Strava.EnvPrefix == "" {
		config.Strava.EnvPrefix = "STRAVA"
	}
	if config.Strava.ApiUrl == "" {
		config.Strava.ApiUrl = "https://www.strava.com"
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Search.ApiUrl == "" {
		config.Search.ApiUrl = "https://api.tavily.com"
	}
	if config.Search.MaxResults == 0 {
		config.Search.MaxResults = 5
	}
	if config.Export == nil {
		config.Export = &ExportConfig{}
	}
	if config.Export.OutputDir == "" {
		config.Export.OutputDir = "training_plans"
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
}
