// Package distill condenses a schematic into compact structured data:
// real components with resolved pin-to-net mapping, named nets, and a
// proximity graph that scores physically close part pairs. The output is
// meant for machine consumption (JSON), not for rendering.
package distill

// Category is a coarse component class used for proximity weighting.
type Category string

const (
	CategoryCapacitor  Category = "capacitor"
	CategoryIC         Category = "ic"
	CategoryResistor   Category = "resistor"
	CategoryInductor   Category = "inductor"
	CategoryTransistor Category = "transistor"
	CategoryOther      Category = "other"
)

// Pin is one component pin with its resolved net, if any.
type Pin struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
	Net    string `json:"net,omitempty"`
}

// Component is one real part. Power and net-label pseudo-symbols are
// filtered out before distillation.
type Component struct {
	Reference  string            `json:"reference"`
	LibID      string            `json:"lib_id"`
	Value      string            `json:"value"`
	Footprint  string            `json:"footprint,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Position   Point             `json:"position"`
	Category   Category          `json:"category"`
	Pins       []Pin             `json:"pins"`
}

// Point is a schematic coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Net maps reference designators to the pin numbers they contribute.
type Net map[string][]string

// ProximityEdge scores one pair of components standing close together.
// Score grows linearly as distance shrinks toward zero, scaled by the
// category pair weight.
type ProximityEdge struct {
	RefA       string   `json:"ref_a"`
	RefB       string   `json:"ref_b"`
	DistanceMM float64  `json:"distance_mm"`
	Score      float64  `json:"score"`
	CategoryA  Category `json:"category_a"`
	CategoryB  Category `json:"category_b"`
	Weight     float64  `json:"weight"`
}

// Result is the full distillation output.
type Result struct {
	Components  []Component     `json:"components"`
	Nets        map[string]Net  `json:"nets"`
	Proximities []ProximityEdge `json:"proximities"`
}
