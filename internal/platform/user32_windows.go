package platform

import "syscall"

var user32 = syscall.NewLazyDLL("user32.dll")
