package iface

// Wire layout, schema version 1.
//
// A descriptor buffer is a tree of three record shapes. Field indexes
// are fixed per shape; an absent field reads as its zero value.
//
//	module record
//	  0  classes  vector of class records
//
//	class record
//	  0  name     string, lookup key within the module
//	  1  methods  vector of method records
//
//	method record
//	  0  name     string, lookup key within the class
//	  1  handle   string, resolver key for the callable
//
// Field n lives at vtable offset 4+2n, so readers probe offsets 4 and
// 6. Schema growth appends new fields after the existing ones; indexes
// never reorder, which keeps old readers working on new buffers.
const (
	moduleNumFields    = 1
	moduleFieldClasses = 0

	classNumFields    = 2
	classFieldName    = 0
	classFieldMethods = 1

	methodNumFields   = 2
	methodFieldName   = 0
	methodFieldHandle = 1
)
