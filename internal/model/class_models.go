package model

// Entity type names the console can manage.
const (
	ClassBaseModel = "BaseModel"
	ClassUser      = "User"
	ClassState     = "State"
	ClassCity      = "City"
	ClassAmenity   = "Amenity"
	ClassPlace     = "Place"
	ClassReview    = "Review"
)

var classes = []string{
	ClassBaseModel,
	ClassUser,
	ClassState,
	ClassCity,
	ClassAmenity,
	ClassPlace,
	ClassReview,
}

var knownClasses = func() map[string]struct{} {
	m := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		m[c] = struct{}{}
	}
	return m
}()

// IsKnownClass reports whether name is one of the managed entity types.
// The match is exact and case-sensitive.
func IsKnownClass(name string) bool {
	_, ok := knownClasses[name]
	return ok
}

// Classes returns the managed entity type names in a stable order.
func Classes() []string {
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}
