package ews

// Trait represents an annotation applied to a shape or member. Traits
// related to serialization are declared in the traits package and compiled
// by xmlcodec; traits whose ID falls outside the "ews.serde" namespace are
// ignored by the codec.
type Trait interface {
	TraitID() string
}
