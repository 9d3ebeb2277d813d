package buildinfo

import (
	"fmt"
	"runtime"
)

// Version is set during build via ldflags:
//
//	go build -ldflags "-X plume/internal/buildinfo.Version=v1.2.0"
var Version = "dev"

// String is the one-line banner printed by the CLI
func String() string {
	return fmt.Sprintf("Plume %s (%s/%s, %s)", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
