// Package debug gates optional stderr logging behind environment
// variables so problem runs can be inspected without changing flags.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Registry bool
	Pipeline bool
	Meta     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("TYPEFORGE_DEBUG_LOAD")
	d.Registry = boolEnv("TYPEFORGE_DEBUG_REGISTRY")
	d.Pipeline = boolEnv("TYPEFORGE_DEBUG_PIPELINE")
	d.Meta = boolEnv("TYPEFORGE_DEBUG_META")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Registry() bool {
	return d.Registry
}
func Pipeline() bool {
	return d.Pipeline
}
func Meta() bool {
	return d.Meta
}
