package host

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// ProductNames are the USB product strings the hidraw scan matches.
var ProductNames = []string{"Yxa", "SZR35"}

const maxHidraw = 20

// FindKeyboard scans /sys/class/hidraw for the keyboard's raw HID interface
// and returns its /dev/hidrawN path. The raw endpoint registers as a second
// or third input interface, which is how it is told apart from the boot
// keyboard interface of the same device.
func FindKeyboard() (string, error) {
	for i := 0; i < maxHidraw; i++ {
		devPath := fmt.Sprintf("/dev/hidraw%d", i)
		if _, err := os.Stat(devPath); err != nil {
			continue
		}
		ueventPath := fmt.Sprintf("/sys/class/hidraw/hidraw%d/device/uevent", i)
		content, err := os.ReadFile(ueventPath)
		if err != nil {
			continue
		}
		uevent := string(content)

		matched := false
		for _, name := range ProductNames {
			if strings.Contains(uevent, name) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if strings.Contains(uevent, "input1") || strings.Contains(uevent, "input2") {
			return devPath, nil
		}
	}
	return "", fmt.Errorf("keyboard not found; looked for products: %s", strings.Join(ProductNames, ", "))
}

// Open opens a hidraw device non-blocking for read and write, so Poll can
// drain the kernel buffer without stalling the UI loop.
func Open(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

// OpenKeyboard finds and opens the keyboard's raw HID interface.
func OpenKeyboard() (*os.File, error) {
	path, err := FindKeyboard()
	if err != nil {
		return nil, err
	}
	return Open(path)
}
