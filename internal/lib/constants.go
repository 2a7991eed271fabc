package lib

import "fmt"

const (
	EnvKeyPrefix = "STEPKIT"
)

var (
	LogLevelEnv   = fmt.Sprintf("%s_%s", EnvKeyPrefix, "LOG_LEVEL")
	ConfigPathEnv = fmt.Sprintf("%s_%s", EnvKeyPrefix, "CONFIG")
)

const (
	DefaultConfigPath = "./stepkit.yaml"
	DefaultLogLevel   = "warn"
)
