package models

// Schematic is the catalog record of a saved schematic file.
type Schematic struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Entries    int32   `json:"entries"`
	Compressed bool    `json:"compressed"`
	HasAnchor  bool    `json:"has_anchor"`
	World      string  `json:"world,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Z          float64 `json:"z,omitempty"`
	CreatedAt  int64   `json:"created_at"`
}
