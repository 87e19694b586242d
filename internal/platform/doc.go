// Package platform contains small cross-platform filesystem helpers.
package platform
