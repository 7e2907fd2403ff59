package platform

import "fmt"

var procBlockInput = user32.NewProc("BlockInput")

// blockInput calls user32 BlockInput, which needs an elevated process.
func blockInput(block bool) error {
	var flag uintptr
	if block {
		flag = 1
	}
	result, _, err := procBlockInput.Call(flag)
	if result == 0 {
		return fmt.Errorf("BlockInput(%t): %w", block, err)
	}
	return nil
}
