//go:build !darwin

package notify

import "errors"

func openAccessibilitySettings() error {
	return errors.New("no accessibility settings on this platform")
}
