package util

// Config holds runtime settings and flags.
type Config struct {
	StorePath string
	Theme     string // dark|light
	Version   string
}
