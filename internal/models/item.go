package models

// RepoItem is a canonical catalog entry. Name is the unique key presets refer to.
type RepoItem struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Type               string  `json:"type"`
	Weight             float64 `json:"weight"`
	Value              string  `json:"value"` // Display string, e.g. "10 gp"
	Damage             string  `json:"damage,omitempty"`
	AC                 int     `json:"ac,omitempty"`
	Properties         string  `json:"properties,omitempty"`
	RequiresAttunement bool    `json:"requires_attunement"`
}

// Item is a concrete item instance held by a shop or a character
type Item struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Type               string  `json:"type"`
	Weight             float64 `json:"weight"`
	Value              string  `json:"value"`
	Qty                int     `json:"qty"`
	Damage             string  `json:"damage,omitempty"`
	AC                 int     `json:"ac,omitempty"`
	Properties         string  `json:"properties,omitempty"`
	RequiresAttunement bool    `json:"requires_attunement"`
	IsAttuned          bool    `json:"is_attuned"`
	Charges            int     `json:"charges,omitempty"`
	MaxCharges         int     `json:"max_charges,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// CustomItem is a partial item definition embedded in a preset.
// Every field is optional; missing values get defaults at generation time.
type CustomItem struct {
	Name               string  `json:"name,omitempty"`
	Category           string  `json:"category,omitempty"`
	Type               string  `json:"type,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	Value              string  `json:"value,omitempty"`
	Damage             string  `json:"damage,omitempty"`
	AC                 int     `json:"ac,omitempty"`
	Properties         string  `json:"properties,omitempty"`
	RequiresAttunement bool    `json:"requires_attunement,omitempty"`
	Charges            int     `json:"charges,omitempty"`
	MaxCharges         int     `json:"max_charges,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// ItemList is a collection of items
type ItemList struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
}
