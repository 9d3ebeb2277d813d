//go:build !windows

package service

// The Windows service host has no equivalent elsewhere; these keep the CLI
// portable.

// RunService runs the application in the foreground
func RunService(isDebug bool, app *Application) error {
	return app.Run()
}

func InstallService(exePath string) error {
	return ErrUnsupported
}

func UninstallService() error {
	return ErrUnsupported
}

func StartService() error {
	return ErrUnsupported
}

func StopService() error {
	return ErrUnsupported
}

// IsWindowsService always returns false on non-Windows platforms
func IsWindowsService() (bool, error) {
	return false, nil
}
