// Package provider contains the Provider aggregate of the dispatch domain.
//
// A provider is a mobile worker who accepts service bookings. The aggregate
// owns the commission wallet (balance never goes negative), the last known
// geographic position used for proximity matching, and the set of catalog
// services the provider is able to perform.
package provider
