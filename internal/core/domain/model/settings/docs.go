// Package settings contains the PlatformSettings value object of the dispatch
// domain: the administrator-configured minimum wallet balance required to
// accept jobs, and the commission percent charged on acceptance.
package settings
