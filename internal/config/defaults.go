package config

const (
	// DefaultMainFilename is the main configuration file name.
	DefaultMainFilename = "general.toml"

	// DefaultIncludesName is the key listing include specifications.
	DefaultIncludesName = "includes"

	// TemplateDirectory is the distribution data directory holding templates.
	TemplateDirectory = "configuration"
)

// Include specification tokens.
const (
	TokenUserConfiguration = "{user_configuration}"
	TokenUserHome          = "{user_home}"
	TokenApplicationName   = "{application_name}"
)
