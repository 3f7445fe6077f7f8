package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASSESSBOT_DEBUG") == "1"
}
