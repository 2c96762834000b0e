package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"upc-cli/logger"
	"upc-cli/storage"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultConfigFile = "config.toml"

// Env holds the process settings read from UPC_* variables.
type Env struct {
	DataDir     string        `envconfig:"DATA_DIR"`
	ConfigFile  string        `envconfig:"CONFIG_FILE"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	ReturnDelay time.Duration `envconfig:"RETURN_DELAY" default:"2s"`
}

// Features holds user-facing settings from the TOML file. Every section is
// optional; missing sections keep their defaults.
type Features struct {
	Profile      Profile            `toml:"profile"`
	Classes      []Class            `toml:"classes"`
	Catalog      CatalogConfig      `toml:"catalog"`
	Availability AvailabilityConfig `toml:"availability"`
	Help         HelpConfig         `toml:"help"`
}

type Profile struct {
	Name        string `toml:"name" json:"name"`
	Program     string `toml:"program" json:"program"`
	Email       string `toml:"email" json:"email"`
	Campus      string `toml:"campus" json:"campus"`
	StudentCode string `toml:"student_code" json:"student_code"`
	BannerID    string `toml:"banner_id" json:"banner_id"`
}

// Class is one weekly slot of the student's timetable.
type Class struct {
	Day    string `toml:"day" json:"day"`
	Start  string `toml:"start" json:"start"`
	End    string `toml:"end" json:"end"`
	Course string `toml:"course" json:"course"`
	NRC    string `toml:"nrc" json:"nrc"`
	Room   string `toml:"room" json:"room"`
}

// CatalogConfig replaces the built-in option lists when a list is non-empty.
type CatalogConfig struct {
	Campuses   []string `toml:"campuses" json:"campuses"`
	Sports     []string `toml:"sports" json:"sports"`
	Laboratory []string `toml:"laboratory" json:"laboratory"`
}

// AvailabilityConfig lists the bookable hours. Nil keeps the built-in hours;
// an empty list offers none.
type AvailabilityConfig struct {
	Hours []string `toml:"hours" json:"hours"`
}

type HelpConfig struct {
	Text     string        `toml:"text" json:"text"`
	Sections []HelpSection `toml:"sections" json:"sections"`
}

type HelpSection struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
}

type Config struct {
	Env
	Features
	Level logger.Level
}

// DefaultFeatures mirrors the content shipped with the student portal.
func DefaultFeatures() Features {
	return Features{
		Profile: Profile{
			Name:        "NOMBRE DE USUARIO",
			Program:     "Ingeniería de Sistemas",
			Email:       "U200000000@upc.edu.pe",
			Campus:      "Campus Monterrico",
			StudentCode: "200000000",
			BannerID:    "N00000000",
		},
		Classes: []Class{
			{Day: "Viernes", Start: "19:00", End: "20:59", Course: "Matemática Discreta", NRC: "2125"},
		},
		Help: HelpConfig{
			Text: "Aquí puedes encontrar ayuda sobre la aplicación.",
		},
	}
}

// Load reads an optional .env file, the UPC_* environment and the optional
// TOML feature file, in that order.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	var env Env
	if err := envconfig.Process("upc", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if env.DataDir == "" {
		dir, err := storage.ConfigDir()
		if err != nil {
			return nil, err
		}
		env.DataDir = dir
	}
	if env.ConfigFile == "" {
		env.ConfigFile = filepath.Join(env.DataDir, defaultConfigFile)
	}

	features, err := LoadFeatures(env.ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Env: env, Features: features}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFeatures decodes the TOML file at path over the defaults. A missing file
// yields the defaults.
func LoadFeatures(path string) (Features, error) {
	features := DefaultFeatures()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return features, nil
		}
		return Features{}, err
	}
	if info.IsDir() {
		return Features{}, fmt.Errorf("config path is a directory: %s", path)
	}

	// Tables decode over the defaults so keys left out keep their values.
	file := Features{Profile: features.Profile, Help: features.Help}
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Features{}, fmt.Errorf("failed to load feature config: %w", err)
	}

	features.Profile = file.Profile
	features.Help = file.Help
	if meta.IsDefined("classes") {
		features.Classes = file.Classes
	}
	features.Catalog = file.Catalog
	features.Availability = file.Availability
	if meta.IsDefined("availability", "hours") && features.Availability.Hours == nil {
		features.Availability.Hours = []string{}
	}
	return features, nil
}

// Validate checks values that would otherwise fail later at use.
func (c *Config) Validate() error {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("UPC_LOG_LEVEL: %w", err)
	}
	c.Level = level

	if c.ReturnDelay < 0 {
		return fmt.Errorf("UPC_RETURN_DELAY must not be negative")
	}
	for _, hour := range c.Availability.Hours {
		if !validClock(hour) {
			return fmt.Errorf("availability hour %q is not HH:MM", hour)
		}
	}
	for _, class := range c.Classes {
		if class.Course == "" {
			return fmt.Errorf("class entry is missing course")
		}
		if !validClock(class.Start) || !validClock(class.End) {
			return fmt.Errorf("class %q: start and end must be HH:MM", class.Course)
		}
	}
	return nil
}

func validClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil && len(value) == 5
}
