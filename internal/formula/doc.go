// Package formula provides types and snapshot-diffing for Homebrew formulas.
//
// The formula package models the subset of the formulae.brew.sh API record
// that the tool interprets, and implements the three-way comparison
// (added/removed/updated) between a stored snapshot and a freshly fetched
// formula list. Update detection uses plain string equality on the stable
// version, with a missing version treated as the empty string.
package formula
