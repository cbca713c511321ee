package monitor

import (
	"log/slog"

	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/internal/storage"
)

// Monitor owns the in-memory store and the latest insights for one session
type Monitor struct {
	store     *energy.Store
	insights  []string
	generator *energy.Generator
	dataPath  string
	threshold float64
	logger    *slog.Logger
}

// Options configures a Monitor
type Options struct {
	DataPath  string
	Threshold float64
	Generator *energy.Generator
	Logger    *slog.Logger
	Store     *energy.Store // initial contents; empty when nil
}

// New creates a monitor over opts.Store, or an empty store
func New(opts Options) *Monitor {
	if opts.DataPath == "" {
		opts.DataPath = storage.DefaultDataPath()
	}
	if opts.Threshold <= 0 {
		opts.Threshold = energy.DefaultThreshold
	}
	if opts.Generator == nil {
		opts.Generator = energy.NewGenerator(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Store == nil {
		opts.Store = energy.NewStore()
	}

	return &Monitor{
		store:     opts.Store,
		generator: opts.Generator,
		dataPath:  opts.DataPath,
		threshold: opts.Threshold,
		logger:    opts.Logger,
	}
}

// Store returns the current in-memory store
func (m *Monitor) Store() *energy.Store {
	return m.store
}

// Insights returns the insights from the last analysis, or nil if none ran
func (m *Monitor) Insights() []string {
	return append([]string(nil), m.insights...)
}

// DataPath returns the file the monitor saves to and loads from
func (m *Monitor) DataPath() string {
	return m.dataPath
}

// Generate appends one simulated reading per appliance and returns how many appliances were sampled
func (m *Monitor) Generate() int {
	m.generator.Generate(m.store)
	n := len(m.generator.Appliances())
	m.logger.Debug("generated readings", "appliances", n, "total_readings", m.store.Len())
	return n
}

// Save writes the store to the data file
func (m *Monitor) Save() error {
	if err := storage.Save(m.dataPath, m.store); err != nil {
		m.logger.Debug("save failed", "path", m.dataPath, "error", err)
		return err
	}
	m.logger.Debug("saved store", "path", m.dataPath, "readings", m.store.Len())
	return nil
}

// Load replaces the store with the data file's contents. On error the current
// store is left untouched.
func (m *Monitor) Load() error {
	store, err := storage.Load(m.dataPath)
	if err != nil {
		m.logger.Debug("load failed", "path", m.dataPath, "error", err)
		return err
	}
	m.store = store
	m.logger.Debug("loaded store", "path", m.dataPath, "readings", store.Len())
	return nil
}

// Analyze recomputes the insights, discarding the previous list
func (m *Monitor) Analyze() []string {
	m.insights = energy.Analyze(m.store, m.threshold)
	m.logger.Debug("analyzed store", "threshold", m.threshold, "insights", len(m.insights))
	return m.Insights()
}
