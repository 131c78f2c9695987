// Package brewapi provides the HTTP client for Homebrew's formula API.
//
// The brewapi package fetches the public formula listing from
// formulae.brew.sh and looks up individual formulas by name. List fetches
// are retried with exponential backoff on transient failures; a 404 on a
// single-formula lookup maps to ErrNotFound rather than an HTTP error.
package brewapi
