// Package notifier provides notification interfaces and implementations
// for newly added Homebrew formulas.
//
// The notifier package supports posting formula announcements to Twitter,
// handling OAuth authentication, rate limiting between posts, and message
// formatting. A dry-run implementation prints the would-be posts instead.
package notifier
