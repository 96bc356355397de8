// Package testutil holds fixtures shared by package tests: files on disk
// and generated PNG images.
package testutil
