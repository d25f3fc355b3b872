package config

import "os"

// Development reports whether DEVELOPMENT is set to anything but "0". It
// turns on debug logging.
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
