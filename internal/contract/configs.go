package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/kinetrace/kinetrace/schema"
)

// Default values for configuration.
const (
	DefaultMinFrames         = 10
	DefaultDebounceFrames    = 3
	DefaultCheatThreshold    = 0.7
	DefaultMinConfidence     = 0.3
	DefaultSamplingRate      = 10.0 // frames per second
	DefaultFrameBudget       = 5000 // buffered frames before downsampling kicks in
	DefaultHistoryLimit      = 25
	MaxHistoryLimit          = 1000
	DefaultPrecision         = 1
	DefaultTimingVarianceMs  = 2000.0
	DefaultEnvironmentDrift  = 0.15
	DefaultEdgeDensityFloor  = 0.10
	DefaultBrightnessVarMax  = 0.10
	DefaultBrightnessDevMax  = 0.30
	DefaultSpliceJumpMin     = 0.30
	DefaultSpliceJumpAllowed = 2
)

// DefaultSubScoreWeight is the equal weight applied to each quality
// sub-score when no per-kind override is configured.
const DefaultSubScoreWeight = 0.25

// Config holds the runtime configuration for an analysis invocation.
// This struct remains the "final, validated" config.
type Config struct {
	TestKind schema.TestKind
	Profile  schema.UserProfile

	MinFrames      int
	DebounceFrames int
	CheatThreshold float64
	MinConfidence  float64
	SamplingRate   float64
	FrameBudget    int

	TimingVarianceMs float64
	EnvironmentDrift float64
	EdgeDensityFloor float64

	// Detector is the external person/object presence capability.
	// Nil disables the foreign-presence check.
	Detector PresenceDetector

	// CustomWeights is a mapping of [TestKind][SubScoreKey] = Weight
	CustomWeights map[schema.TestKind]map[schema.SubScoreKey]float64

	// ComputedWeights is the final weights map per kind, computed from
	// defaults + custom overrides and renormalized to sum to 1.
	ComputedWeights map[schema.TestKind]map[schema.SubScoreKey]float64

	// Norms is the merged norm table (defaults + config overrides).
	Norms schema.NormTable

	// CLI-facing settings.
	FramesPath     string
	Output         schema.OutputMode
	OutputFile     string
	Precision      int
	HistoryLimit   int
	Width          int // Terminal width override (0 = auto-detect)
	StoreBackend   schema.StorageBackend
	StoreDBConnect string // Please use env var as this is plaintext
	UseEmojis      bool
	UseColors      bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Test   string `mapstructure:"test"`
	Age    int    `mapstructure:"age"`
	Gender string `mapstructure:"gender"`
	Frames string `mapstructure:"frames"`

	MinFrames      int     `mapstructure:"min-frames"`
	Debounce       int     `mapstructure:"debounce-frames"`
	CheatThreshold float64 `mapstructure:"cheat-threshold"`
	MinConfidence  float64 `mapstructure:"min-confidence"`
	SamplingRate   float64 `mapstructure:"sampling-rate"`
	FrameBudget    int     `mapstructure:"frame-budget"`

	TimingVarianceMs float64 `mapstructure:"timing-variance-ms"`
	EnvironmentDrift float64 `mapstructure:"environment-drift"`
	EdgeDensityFloor float64 `mapstructure:"edge-density-floor"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Limit      int    `mapstructure:"limit"`
	Width      int    `mapstructure:"width"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Custom quality weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Norm table overrides from config file ---
	Norms schema.NormTable `mapstructure:"norms"`
}

// KindWeightsRaw holds the custom quality weights for a single test kind.
// Use float64 pointers so absent fields keep their defaults.
type KindWeightsRaw struct {
	Posture       *float64 `mapstructure:"posture"`
	Consistency   *float64 `mapstructure:"consistency"`
	RangeOfMotion *float64 `mapstructure:"range_of_motion"`
	Timing        *float64 `mapstructure:"timing"`
}

// WeightsRawInput holds all custom quality weight definitions from the config file.
type WeightsRawInput struct {
	Pushup       *KindWeightsRaw `mapstructure:"pushup"`
	Situp        *KindWeightsRaw `mapstructure:"situp"`
	Squat        *KindWeightsRaw `mapstructure:"squat"`
	VerticalJump *KindWeightsRaw `mapstructure:"vertical_jump"`
	BroadJump    *KindWeightsRaw `mapstructure:"broad_jump"`
	Plank        *KindWeightsRaw `mapstructure:"plank"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.TestKind]map[schema.SubScoreKey]float64)
		for kind, kindMap := range c.CustomWeights {
			clone.CustomWeights[kind] = make(map[schema.SubScoreKey]float64)
			maps.Copy(clone.CustomWeights[kind], kindMap)
		}
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[schema.TestKind]map[schema.SubScoreKey]float64)
		for kind, kindMap := range c.ComputedWeights {
			clone.ComputedWeights[kind] = make(map[schema.SubScoreKey]float64)
			maps.Copy(clone.ComputedWeights[kind], kindMap)
		}
	}
	if c.Norms != nil {
		clone.Norms = make(schema.NormTable)
		for kind, groups := range c.Norms {
			clone.Norms[kind] = make(map[string]map[string]schema.NormTiers)
			for group, genders := range groups {
				clone.Norms[kind][group] = make(map[string]schema.NormTiers)
				maps.Copy(clone.Norms[kind][group], genders)
			}
		}
	}
	return &clone
}

// WeightsFor returns the computed quality weights for a test kind,
// falling back to equal weights if the kind has no computed entry.
func (c *Config) WeightsFor(kind schema.TestKind) map[schema.SubScoreKey]float64 {
	if w, ok := c.ComputedWeights[kind]; ok {
		return w
	}
	return equalWeights()
}

func equalWeights() map[schema.SubScoreKey]float64 {
	w := make(map[schema.SubScoreKey]float64, len(schema.AllSubScoreKeys))
	for _, key := range schema.AllSubScoreKeys {
		w[key] = DefaultSubScoreWeight
	}
	return w
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	processNorms(cfg, input)
	return nil
}

// ValidateAssessmentRequest checks the inputs only the analyze path needs.
func ValidateAssessmentRequest(cfg *Config) error {
	if _, ok := schema.ValidTestKinds[cfg.TestKind]; !ok {
		return fmt.Errorf("invalid test kind '%s'. must be one of %v", cfg.TestKind, schema.AllTestKinds)
	}
	if cfg.Profile.Age < 0 || cfg.Profile.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120 (received %d)", cfg.Profile.Age)
	}
	if _, ok := schema.ValidGenders[cfg.Profile.Gender]; !ok {
		return fmt.Errorf("invalid gender '%s'. must be male or female", cfg.Profile.Gender)
	}
	return nil
}

// validateSimpleInputs processes and validates the non-threshold fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.TestKind = schema.TestKind(strings.ToLower(input.Test))
	cfg.Profile = schema.UserProfile{Age: input.Age, Gender: strings.ToLower(input.Gender)}
	cfg.FramesPath = input.Frames
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. HistoryLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.HistoryLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Backend Validation ---
	cfg.StoreBackend = schema.StorageBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStorageBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processThresholds validates the numeric analysis thresholds.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	if input.MinFrames < 1 {
		return fmt.Errorf("min-frames must be at least 1 (received %d)", input.MinFrames)
	}
	cfg.MinFrames = input.MinFrames

	if input.Debounce < 1 {
		return fmt.Errorf("debounce-frames must be at least 1 (received %d)", input.Debounce)
	}
	cfg.DebounceFrames = input.Debounce

	if input.CheatThreshold <= 0 || input.CheatThreshold > 1 {
		return fmt.Errorf("cheat-threshold must be in (0,1] (received %g)", input.CheatThreshold)
	}
	cfg.CheatThreshold = input.CheatThreshold

	if input.MinConfidence < 0 || input.MinConfidence > 1 {
		return fmt.Errorf("min-confidence must be in [0,1] (received %g)", input.MinConfidence)
	}
	cfg.MinConfidence = input.MinConfidence

	if input.SamplingRate <= 0 {
		return fmt.Errorf("sampling-rate must be positive (received %g)", input.SamplingRate)
	}
	cfg.SamplingRate = input.SamplingRate

	if input.FrameBudget < DefaultMinFrames {
		return fmt.Errorf("frame-budget must be at least %d (received %d)", DefaultMinFrames, input.FrameBudget)
	}
	cfg.FrameBudget = input.FrameBudget

	if input.TimingVarianceMs <= 0 {
		return fmt.Errorf("timing-variance-ms must be positive (received %g)", input.TimingVarianceMs)
	}
	cfg.TimingVarianceMs = input.TimingVarianceMs

	if input.EnvironmentDrift <= 0 {
		return fmt.Errorf("environment-drift must be positive (received %g)", input.EnvironmentDrift)
	}
	cfg.EnvironmentDrift = input.EnvironmentDrift

	if input.EdgeDensityFloor < 0 || input.EdgeDensityFloor > 1 {
		return fmt.Errorf("edge-density-floor must be in [0,1] (received %g)", input.EdgeDensityFloor)
	}
	cfg.EdgeDensityFloor = input.EdgeDensityFloor

	return nil
}

// processCustomWeights merges config-file overrides over the default
// equal weights and renormalizes each kind's weights to sum to 1.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	rawByKind := map[schema.TestKind]*KindWeightsRaw{
		schema.PushupTest:       input.Weights.Pushup,
		schema.SitupTest:        input.Weights.Situp,
		schema.SquatTest:        input.Weights.Squat,
		schema.VerticalJumpTest: input.Weights.VerticalJump,
		schema.BroadJumpTest:    input.Weights.BroadJump,
		schema.PlankTest:        input.Weights.Plank,
	}

	cfg.CustomWeights = make(map[schema.TestKind]map[schema.SubScoreKey]float64)
	cfg.ComputedWeights = make(map[schema.TestKind]map[schema.SubScoreKey]float64)

	for _, kind := range schema.AllTestKinds {
		computed := equalWeights()
		raw := rawByKind[kind]
		if raw != nil {
			custom := make(map[schema.SubScoreKey]float64)
			applyOverride(custom, schema.PostureKey, raw.Posture)
			applyOverride(custom, schema.ConsistencyKey, raw.Consistency)
			applyOverride(custom, schema.RangeKey, raw.RangeOfMotion)
			applyOverride(custom, schema.TimingKey, raw.Timing)
			for key, w := range custom {
				if w < 0 {
					return fmt.Errorf("weight %s.%s must not be negative (received %g)", kind, key, w)
				}
				computed[key] = w
			}
			cfg.CustomWeights[kind] = custom
		}

		var sum float64
		for _, w := range computed {
			sum += w
		}
		if sum <= 0 {
			return fmt.Errorf("weights for %s must not all be zero", kind)
		}
		for key := range computed {
			computed[key] /= sum
		}
		cfg.ComputedWeights[kind] = computed
	}

	return nil
}

func applyOverride(dst map[schema.SubScoreKey]float64, key schema.SubScoreKey, v *float64) {
	if v != nil {
		dst[key] = *v
	}
}

// processNorms layers config-file norm overrides over the built-in table.
func processNorms(cfg *Config, input *ConfigRawInput) {
	cfg.Norms = DefaultNorms()
	for kind, groups := range input.Norms {
		if cfg.Norms[kind] == nil {
			cfg.Norms[kind] = make(map[string]map[string]schema.NormTiers)
		}
		for group, genders := range groups {
			if cfg.Norms[kind][group] == nil {
				cfg.Norms[kind][group] = make(map[string]schema.NormTiers)
			}
			for gender, tiers := range genders {
				cfg.Norms[kind][group][strings.ToLower(gender)] = tiers
			}
		}
	}
}

// ValidateStoreConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StorageBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
