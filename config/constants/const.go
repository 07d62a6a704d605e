package constants

import (
	"os"
	"path/filepath"
)

const DefaultHomeEnv string = "SOLSTAKE_HOME"
const ConfigEnv string = "SOLSTAKE_CONFIG"

var DefaultHome string

func init() {
	if home := os.Getenv(DefaultHomeEnv); home != "" {
		DefaultHome = home
		return
	} else {
		// ~/.solstake default
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			DefaultHome = "/data"
		} else {
			DefaultHome = filepath.Join(userHomeDir, ".solstake")
		}
	}
}
