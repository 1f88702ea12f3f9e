// Package util provides generic slice, map and pointer helpers shared by
// the slotkit packages.
package util
