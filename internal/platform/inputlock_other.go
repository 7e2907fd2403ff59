//go:build !windows

package platform

func blockInput(bool) error {
	return ErrInputLockUnsupported
}
