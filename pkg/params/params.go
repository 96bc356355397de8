package params

import (
	"path/filepath"
	"strings"
)

// Params is the resolved parameter set of one launcher.
type Params struct {
	// AppName names the image and the primary launcher
	AppName    string
	Version    string
	Identifier string

	// Entry point. MainJar and Classpath entries are relative to the
	// image app directory.
	MainJar   string
	MainClass string
	Module    string
	Classpath []string

	Arguments   []string
	JavaOptions []string

	// Icon is a user supplied icon file; empty selects the default icon.
	Icon string
	// IconSize re-renders the icon as a square of that many pixels when
	// positive. Zero copies the icon verbatim.
	IconSize int

	AppResources []*ResourceSet
}

// LauncherName returns the name of the launcher these params describe
func (p Params) LauncherName() string {
	return p.AppName
}

// Clone returns a deep copy. Resource sets are shared read-only values
// and are copied by reference.
func (p Params) Clone() Params {
	c := p
	c.Classpath = cloneStrings(p.Classpath)
	c.Arguments = cloneStrings(p.Arguments)
	c.JavaOptions = cloneStrings(p.JavaOptions)
	if p.AppResources != nil {
		c.AppResources = make([]*ResourceSet, len(p.AppResources))
		copy(c.AppResources, p.AppResources)
	}
	return c
}

// DefaultAppName derives an application name from the entry point: the
// simple name of the main class, otherwise the main jar without its
// extension.
func DefaultAppName(mainClass, mainJar string) string {
	if mainClass != "" {
		if i := strings.LastIndex(mainClass, "."); i >= 0 {
			return mainClass[i+1:]
		}
		return mainClass
	}
	if mainJar != "" {
		base := filepath.Base(mainJar)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return ""
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
