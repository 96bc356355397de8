package config

// Config mirrors the project file
type Config struct {
	App       AppConfig        `koanf:"app"`
	Inputs    []InputConfig    `koanf:"inputs"`
	Output    OutputConfig     `koanf:"output"`
	Resources ResourcesConfig  `koanf:"resources"`
	Launchers []LauncherConfig `koanf:"launchers"`

	// BaseDir anchors relative paths. It is the project file's directory,
	// or the working directory when there is no project file.
	BaseDir string `koanf:"-"`
	// Source is the project file that was loaded, if any
	Source string `koanf:"-"`
}

// AppConfig describes the primary launcher
type AppConfig struct {
	Name        string   `koanf:"name"`
	Version     string   `koanf:"version"`
	Identifier  string   `koanf:"identifier"`
	MainJar     string   `koanf:"main_jar"`
	MainClass   string   `koanf:"main_class"`
	Module      string   `koanf:"module"`
	Classpath   []string `koanf:"classpath"`
	Arguments   []string `koanf:"arguments"`
	JavaOptions []string `koanf:"java_options"`
	Icon        string   `koanf:"icon"`
	IconSize    int      `koanf:"icon_size"`
}

// InputConfig is one application resource set. Without files, every file
// under dir is included except those matching an exclude glob.
type InputConfig struct {
	Dir     string   `koanf:"dir"`
	Files   []string `koanf:"files"`
	Exclude []string `koanf:"exclude"`
}

// OutputConfig selects where and for which platform the image is built
type OutputConfig struct {
	Dir      string `koanf:"dir"`
	Platform string `koanf:"platform"`
}

// ResourcesConfig points at directories shadowing the embedded resources
type ResourcesConfig struct {
	Dir       string `koanf:"dir"`
	SharedDir string `koanf:"shared_dir"`
}

// LauncherConfig is one secondary launcher. Keys set inline take
// precedence over the same keys in File.
type LauncherConfig struct {
	Name        string   `koanf:"name"`
	File        string   `koanf:"file"`
	MainJar     *string  `koanf:"main_jar"`
	MainClass   *string  `koanf:"main_class"`
	Module      *string  `koanf:"module"`
	Arguments   []string `koanf:"arguments"`
	JavaOptions []string `koanf:"java_options"`
	Icon        *string  `koanf:"icon"`
	Version     *string  `koanf:"version"`
}
