// Package types defines the Environment, Store, and Persister interfaces, the
// safety classes, the configuration, and the standard errors shared by the
// envgod packages.
package types
