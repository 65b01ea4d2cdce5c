package gadget

// Settings is the key-value handle a widget persists its layout through. The
// host owns the store; the widget only reads it at construction and replaces
// its record after completed drags. Values are plain numbers; the persisted
// record is {width, height} plus the active anchor per axis, with inactive
// anchor keys absent.
type Settings interface {
	// Get returns the stored value for key, or def when the key is absent.
	Get(key string, def float64) float64

	// All returns a copy of the full record. Used for diagnostics and for
	// per-field restore where absence is meaningful.
	All() map[string]float64

	// Set stores a single value without flushing.
	Set(key string, v float64)

	// SetAll replaces the entire record. When flush is true the store should
	// persist the record to its backing medium.
	SetAll(values map[string]float64, flush bool)
}

// MemorySettings is an in-memory Settings implementation, useful for tests
// and for hosts that persist elsewhere.
type MemorySettings struct {
	values map[string]float64
}

// NewMemorySettings creates an empty in-memory settings record.
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]float64)}
}

// Get returns the stored value for key, or def when absent.
func (m *MemorySettings) Get(key string, def float64) float64 {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// All returns a copy of the record.
func (m *MemorySettings) All() map[string]float64 {
	out := make(map[string]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Set stores a single value.
func (m *MemorySettings) Set(key string, v float64) {
	m.values[key] = v
}

// SetAll replaces the record. The flush flag is ignored; memory is the
// backing medium.
func (m *MemorySettings) SetAll(values map[string]float64, _ bool) {
	m.values = make(map[string]float64, len(values))
	for k, v := range values {
		m.values[k] = v
	}
}
