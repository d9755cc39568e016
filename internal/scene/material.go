package scene

// PropertyType identifies the concrete type stored in a MaterialProperty.
type PropertyType int

const (
	PropertyFloat PropertyType = iota
	PropertyString
	PropertyInteger
	PropertyBuffer
)

// MaterialProperty is a single opaque key/value entry in a Material's
// property bag.
type MaterialProperty struct {
	Key      string
	Type     PropertyType
	Float    float32
	String   string
	Integer  int
	Buffer   []byte
}

// Material is an opaque property bag. AllocatedCount tracks the backing
// slice capacity separately from the live property count, mirroring the
// distinction the canonical model draws between allocation and occupancy.
type Material struct {
	Name           string
	Properties     []MaterialProperty
	AllocatedCount int
}

// NewMaterial returns an empty material with a small pre-allocated
// property slice.
func NewMaterial(name string) *Material {
	const initialCapacity = 8
	return &Material{
		Name:           name,
		Properties:     make([]MaterialProperty, 0, initialCapacity),
		AllocatedCount: initialCapacity,
	}
}

// Set writes or replaces a property by key.
func (m *Material) Set(p MaterialProperty) {
	for i := range m.Properties {
		if m.Properties[i].Key == p.Key {
			m.Properties[i] = p
			return
		}
	}
	m.Properties = append(m.Properties, p)
	if len(m.Properties) > m.AllocatedCount {
		m.AllocatedCount = cap(m.Properties)
	}
}

// Get returns the property for key and whether it was found.
func (m *Material) Get(key string) (MaterialProperty, bool) {
	for _, p := range m.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return MaterialProperty{}, false
}
