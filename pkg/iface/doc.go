// Package iface models a module's callable surface as a descriptor
// tree: a module holds classes, classes hold methods, and each method
// carries a handle naming its callable in a resolver. Descriptors
// serialize to self-describing records (pkg/iface/wire), so a foreign
// process can list classes and methods without sharing this package's
// type definitions, then dispatch requests against the same tree it
// decoded.
//
// Descriptors are immutable after construction. A process may share
// one across goroutines without locking and publish a newer version by
// swapping a pointer; pkg/registry does exactly that.
package iface
