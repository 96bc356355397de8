package params

// LauncherOverlay describes a secondary launcher as a set of overrides on
// the primary parameters. Nil pointers and nil slices inherit.
type LauncherOverlay struct {
	Name string

	MainJar   *string
	MainClass *string
	Module    *string

	Arguments   []string
	JavaOptions []string

	Icon    *string
	Version *string
}

// Merge applies an overlay to a copy of base. base is never modified.
//
// Entry point overrides replace the inherited entry point as a whole:
// a module clears the main jar and main class, a main jar clears the main
// class and module. A main class alone keeps the inherited jar.
func Merge(base Params, o LauncherOverlay) Params {
	merged := base.Clone()

	merged.AppName = o.Name

	switch {
	case o.Module != nil:
		merged.MainJar = ""
		merged.MainClass = ""
	case o.MainJar != nil:
		merged.MainClass = ""
		merged.Module = ""
	}
	if o.Module != nil {
		merged.Module = *o.Module
	}
	if o.MainJar != nil {
		merged.MainJar = *o.MainJar
	}
	if o.MainClass != nil {
		merged.MainClass = *o.MainClass
	}

	if o.Arguments != nil {
		merged.Arguments = cloneStrings(o.Arguments)
	}
	if o.JavaOptions != nil {
		merged.JavaOptions = cloneStrings(o.JavaOptions)
	}
	if o.Icon != nil {
		merged.Icon = *o.Icon
	}
	if o.Version != nil {
		merged.Version = *o.Version
	}

	return merged
}

// String returns a pointer to s, for building overlays in code
func String(s string) *string {
	return &s
}
