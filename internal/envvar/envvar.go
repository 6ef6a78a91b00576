package envvar

const (
	// OMZEnv is the environment variable used to determine the environment
	OMZEnv = "OMZ_ENV"

	// OMZModelsPath is the environment variable used to override the models directory
	OMZModelsPath = "OMZ_MODELS_PATH"

	// OMZConfigPath is the environment variable used to override the config directory
	OMZConfigPath = "OMZ_CONFIG_PATH"
)
