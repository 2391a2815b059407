package manifest

// Locations pinpoints a location inside a resource.
type Locations struct {
	// Progression is the fraction of the resource already passed at this
	// location, in [0.0, 1.0). Always 0.0 for fixed-layout resources.
	Progression float64
	// TotalProgression is the fraction of the whole publication already
	// passed, in [0.0, 1.0), computed against the grand position total.
	TotalProgression float64
	// Position is the 1-based global index of this location in the
	// publication's pagination. Indices are never reused, but author page
	// lists may leave holes in the sequence.
	Position int
}

// Locator is one addressable location in a publication. Locators are plain
// values: once the positions table is computed they are never mutated.
type Locator struct {
	Href      string
	MediaType string
	Title     string
	Locations Locations
}
