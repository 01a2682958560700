package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "server", "plcstubd":
		return serverTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `name = "plcstub"
addr = ":9300"
cors_origins = ["http://localhost:3000"]
debug_level = 3
# token = "change-me"

[[tags]]
attrs = "protocol=ab_eip&gateway=127.0.0.1&path=1,0&cpu=lgx&name=TankLevel&elem_size=4&elem_count=10"

[[tags]]
attrs = "name=PumpRunning&elem_size=1"
`
