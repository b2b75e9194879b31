package config

import "os"

func IsDebug() bool {
	return os.Getenv("COACHD_DEBUG") == "1"
}
