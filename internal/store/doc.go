// Package store defines the persistence contracts consumed by the service
// layer, plus transaction helpers shared by all implementations.
package store
