// Package constants centralizes defaults shared across the scanner so that
// size thresholds and pool sizes are defined in exactly one place.
package constants
