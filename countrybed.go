// Package countrybed is an offline country directory. A dataset of country
// records ships inside the binary, is normalized once into an immutable
// collection and is then queried in memory: name and region filtering,
// border-country resolution, proximity lookups and a small view-state
// reducer for directory browsers.
package countrybed

import (
	"bytes"
	"compress/bzip2"
	_ "embed"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/geo/s2"
	"go.uber.org/zap"
)

//go:embed countrybed-data/data.json
var embeddedData []byte

// DataSourceID identifies where a CountryBed got its records from.
type DataSourceID string

const (
	DataSourceRaw      DataSourceID = "raw"      // bytes passed with WithRawData
	DataSourceFile     DataSourceID = "file"     // raw JSON file from WithDataFile
	DataSourceCache    DataSourceID = "cache"    // gob cache in the cache directory
	DataSourceEmbedded DataSourceID = "embedded" // dataset compiled into the binary
)

// cacheFileName is the gob cache written by RegenerateCache. A ".bz2" sibling
// is preferred when present.
const cacheFileName = "countries.dmp"

// cacheVersion is bumped whenever Country changes shape.
const cacheVersion = 1

var (
	// ErrEmptyDataset is returned when a data source decodes to zero records.
	ErrEmptyDataset = errors.New("countrybed: dataset is empty")
	// ErrInvalidCache is returned when a cache file cannot be used.
	ErrInvalidCache = errors.New("countrybed: invalid cache")
)

// CountryBedConfig contains configuration options for CountryBed initialization.
type CountryBedConfig struct {
	DataFile string      // Raw JSON dataset overriding the embedded one (default: none)
	CacheDir string      // Directory for the gob cache (default: "./countrybed-cache")
	Logger   *zap.Logger // Logger for load diagnostics (default: no-op)
	rawData  []byte
}

// Option is a functional option for configuring CountryBed.
type Option func(*CountryBedConfig)

// WithDataFile loads the raw dataset from path instead of the embedded copy.
func WithDataFile(path string) Option {
	return func(c *CountryBedConfig) {
		c.DataFile = path
	}
}

// WithCacheDir sets the directory for cache files.
func WithCacheDir(dir string) Option {
	return func(c *CountryBedConfig) {
		c.CacheDir = dir
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *CountryBedConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithRawData loads the dataset from a raw JSON document held in memory.
// It takes precedence over every other source.
func WithRawData(data []byte) Option {
	return func(c *CountryBedConfig) {
		c.rawData = data
	}
}

func defaultConfig() *CountryBedConfig {
	return &CountryBedConfig{
		CacheDir: "./countrybed-cache",
		Logger:   zap.NewNop(),
	}
}

// CountryBed holds the canonical country collection and its indexes.
// It is read-only after construction and safe for concurrent use.
type CountryBed struct {
	countries []Country      // canonical collection, in dataset order
	nameIndex map[string]int // exact name -> first index
	codeIndex map[string]int // cca3 -> first index
	points    []s2.LatLng    // centroid per index; zero when HasCoordinates is false
	source    DataSourceID
	config    *CountryBedConfig

	regionsOnce sync.Once
	regions     []RegionInfo
}

// Singleton pattern for the default CountryBed instance.
var (
	defaultCountryBed     *CountryBed
	defaultCountryBedOnce sync.Once
	defaultCountryBedErr  error
)

// GetDefaultCountryBed returns a shared CountryBed built from the default
// configuration, initializing it on first call.
func GetDefaultCountryBed() (*CountryBed, error) {
	defaultCountryBedOnce.Do(func() {
		defaultCountryBed, defaultCountryBedErr = NewCountryBed()
	})
	return defaultCountryBed, defaultCountryBedErr
}

// NewCountryBed loads, normalizes and indexes the country dataset.
//
// Sources are tried in this order: WithRawData, WithDataFile, the gob cache
// in the cache directory, the embedded dataset. An explicitly configured
// source that fails is an error; an unreadable cache is logged and skipped.
//
//	cb, err := NewCountryBed(WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for _, c := range cb.Filter("land", "Europe") {
//	    fmt.Println(c.Name)
//	}
func NewCountryBed(opts ...Option) (*CountryBed, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	cb := &CountryBed{config: cfg}
	countries, source, err := cb.load()
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("loading %s data: %w", source, ErrEmptyDataset)
	}

	cb.countries = countries
	cb.source = source
	cb.buildIndexes()
	cb.buildPoints()

	cfg.Logger.Info("country dataset loaded",
		zap.String("source", string(source)),
		zap.Int("countries", len(countries)))
	return cb, nil
}

// load picks the first usable data source.
func (cb *CountryBed) load() ([]Country, DataSourceID, error) {
	cfg := cb.config
	if cfg.rawData != nil {
		countries, err := normalizeData(cfg.rawData)
		if err != nil {
			return nil, DataSourceRaw, err
		}
		return countries, DataSourceRaw, nil
	}

	if cfg.DataFile != "" {
		data, err := os.ReadFile(cfg.DataFile)
		if err != nil {
			return nil, DataSourceFile, fmt.Errorf("reading data file: %w", err)
		}
		countries, err := normalizeData(data)
		if err != nil {
			return nil, DataSourceFile, fmt.Errorf("data file %s: %w", cfg.DataFile, err)
		}
		return countries, DataSourceFile, nil
	}

	if cfg.CacheDir != "" {
		countries, err := loadCache(cfg.CacheDir)
		switch {
		case err == nil:
			return countries, DataSourceCache, nil
		case errors.Is(err, fs.ErrNotExist):
			// no cache generated yet
		default:
			cfg.Logger.Warn("ignoring country cache", zap.String("dir", cfg.CacheDir), zap.Error(err))
		}
	}

	countries, err := normalizeData(embeddedData)
	if err != nil {
		return nil, DataSourceEmbedded, fmt.Errorf("embedded data: %w", err)
	}
	return countries, DataSourceEmbedded, nil
}

func normalizeData(data []byte) ([]Country, error) {
	raw, err := ParseRaw(data)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// buildIndexes creates the name and code lookups. The first record wins on
// duplicates, matching a front-to-back scan of the collection.
func (cb *CountryBed) buildIndexes() {
	cb.nameIndex = make(map[string]int, len(cb.countries))
	cb.codeIndex = make(map[string]int, len(cb.countries))
	for i, c := range cb.countries {
		if _, ok := cb.nameIndex[c.Name]; !ok {
			cb.nameIndex[c.Name] = i
		}
		if c.CCA3 == "" {
			continue
		}
		if _, ok := cb.codeIndex[c.CCA3]; !ok {
			cb.codeIndex[c.CCA3] = i
		}
	}

	unresolved := 0
	for _, c := range cb.countries {
		for _, code := range c.Borders {
			if _, ok := cb.codeIndex[code]; !ok {
				unresolved++
			}
		}
	}
	if unresolved > 0 {
		cb.config.Logger.Debug("border codes without a matching country", zap.Int("count", unresolved))
	}
}

// Countries returns a copy of the canonical collection in dataset order.
func (cb *CountryBed) Countries() []Country {
	out := make([]Country, len(cb.countries))
	for i, c := range cb.countries {
		out[i] = c.clone()
	}
	return out
}

// Len returns the number of countries in the collection.
func (cb *CountryBed) Len() int {
	return len(cb.countries)
}

// Source reports which data source the collection was loaded from.
func (cb *CountryBed) Source() DataSourceID {
	return cb.source
}

// cacheFile is the on-disk gob layout.
type cacheFile struct {
	Version   int
	Countries []Country
}

// RegenerateCache normalizes the raw dataset (WithRawData, WithDataFile or
// the embedded copy; never an existing cache) and writes the gob cache to the
// cache directory.
//
// The cache can be compressed afterwards; NewCountryBed reads either form:
//
//	bzip2 -f countrybed-cache/countries.dmp
func RegenerateCache(opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.CacheDir == "" {
		return errors.New("regenerating cache: no cache directory configured")
	}

	// Load from raw data only.
	raw := &CountryBed{config: &CountryBedConfig{
		DataFile: cfg.DataFile,
		Logger:   cfg.Logger,
		rawData:  cfg.rawData,
	}}
	countries, source, err := raw.load()
	if err != nil {
		return fmt.Errorf("failed to load data sets: %w", err)
	}
	if len(countries) == 0 {
		return fmt.Errorf("loading %s data: %w", source, ErrEmptyDataset)
	}

	if err := storeCache(cfg.CacheDir, countries); err != nil {
		return fmt.Errorf("failed to store cache: %w", err)
	}
	cfg.Logger.Info("country cache regenerated",
		zap.String("source", string(source)),
		zap.String("dir", cfg.CacheDir),
		zap.Int("countries", len(countries)))
	return nil
}

// storeCache saves countries to the gob cache in dir.
func storeCache(dir string, countries []Country) error {
	// Cache files are never world-writable (0755/0644).
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(cacheFile{Version: cacheVersion, Countries: countries}); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	path := filepath.Join(dir, cacheFileName)
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// A stale compressed copy would shadow the fresh file.
	if err := os.Remove(path + ".bz2"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale %s.bz2: %w", path, err)
	}
	return nil
}

// openOptionallyBzippedFile opens path+".bz2" through a bzip2 reader, or
// path itself when no compressed copy exists.
func openOptionallyBzippedFile(path string) (io.Reader, func() error, error) {
	fh, err := os.Open(path + ".bz2")
	if err != nil {
		fh, err = os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", path, err)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}

func loadCache(dir string) ([]Country, error) {
	fh, cleanup, err := openOptionallyBzippedFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var cf cacheFile
	if err := gob.NewDecoder(fh).Decode(&cf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCache, err)
	}
	if cf.Version != cacheVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrInvalidCache, cf.Version, cacheVersion)
	}
	for i := range cf.Countries {
		// gob drops empty slices; restore the non-nil invariant.
		if cf.Countries[i].Borders == nil {
			cf.Countries[i].Borders = []string{}
		}
	}
	return cf.Countries, nil
}
