package ews

// Prelude schemas for simple shapes, shared by model packages so that
// scalar members do not each need a bespoke schema declaration.
var (
	PreludeString    = NewSchema("ews.prelude#String", ShapeTypeString)
	PreludeBoolean   = NewSchema("ews.prelude#Boolean", ShapeTypeBoolean)
	PreludeInteger   = NewSchema("ews.prelude#Integer", ShapeTypeInteger)
	PreludeLong      = NewSchema("ews.prelude#Long", ShapeTypeLong)
	PreludeFloat     = NewSchema("ews.prelude#Float", ShapeTypeFloat)
	PreludeDouble    = NewSchema("ews.prelude#Double", ShapeTypeDouble)
	PreludeTimestamp = NewSchema("ews.prelude#Timestamp", ShapeTypeTimestamp)
)
