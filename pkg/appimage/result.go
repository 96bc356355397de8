package appimage

// LauncherResult records one materialized launcher
type LauncherResult struct {
	Name       string `json:"name"`
	Executable string `json:"executable"`
	Config     string `json:"config"`
	// Icon and IconError are only set for secondary launchers with their
	// own icon.
	Icon      string `json:"icon,omitempty"`
	IconError error  `json:"-"`
}

// Result lists what a build wrote. It is returned even when the build
// fails, holding whatever was written before the failure.
type Result struct {
	Root          string           `json:"root"`
	Directories   []string         `json:"directories"`
	Launchers     []LauncherResult `json:"launchers"`
	NativeLibrary string           `json:"native_library,omitempty"`
	Files         []string         `json:"files"`
	Icon          string           `json:"icon,omitempty"`
	IconError     error            `json:"-"`
}

// LauncherNames returns the launcher names in build order
func (r *Result) LauncherNames() []string {
	names := make([]string, len(r.Launchers))
	for i, l := range r.Launchers {
		names[i] = l.Name
	}
	return names
}
