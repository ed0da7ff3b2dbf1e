package config

// Godevfile represents the structure of the godev.yaml configuration file.
// Every field is optional; zero values fall back to defaults.
type Godevfile struct {
	Branch  string     `yaml:"branch"`
	Remotes RemotesDTO `yaml:"remotes"`
	Build   BuildDTO   `yaml:"build"`
}

// RemotesDTO names the upstream remotes in fetch preference order.
type RemotesDTO struct {
	Primary  string `yaml:"primary"`
	Fallback string `yaml:"fallback"`
}

// BuildDTO describes the external build routine and its outputs, with paths
// relative to the checkout root.
type BuildDTO struct {
	Dir     string   `yaml:"dir"`
	Command []string `yaml:"command"`
	Binary  string   `yaml:"binary"`
	Tools   []string `yaml:"tools"`
}
