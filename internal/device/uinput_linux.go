//go:build linux

package device

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

const (
	uinputPath       = "/dev/uinput"
	uinputBusUSB     = 0x03
	uinputVendorID   = 0x1209
	uinputProductID  = 0x4a49
	uinputDeviceName = "fidget-mouse"

	evSyn = 0x00
	evRel = 0x02
	relX  = 0x00
	relY  = 0x01

	uiSetEvbit   = 0x40045564 // _IOW('U', 100, int)
	uiSetRelbit  = 0x40045565 // _IOW('U', 101, int)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)
)

type uinputUserDev struct {
	name [80]byte
	id   struct {
		bustype uint16
		vendor  uint16
		product uint16
		version uint16
	}
	ffEffectsMax uint32
	absmax       [64]int32
	absmin       [64]int32
	absfuzz      [64]int32
	absflat      [64]int32
}

type inputEvent struct {
	time  syscall.Timeval
	etype uint16
	code  uint16
	value int32
}

// UinputPointer emits relative pointer motion through the Linux uinput
// kernel interface. It is the real pointer sink on a general-purpose host.
type UinputPointer struct {
	fd   uintptr
	file *os.File
}

// OpenUinput registers a virtual relative mouse with the kernel.
func OpenUinput() (*UinputPointer, error) {
	f, err := os.OpenFile(uinputPath, os.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("open uinput device: %w", err)
	}
	u := &UinputPointer{fd: f.Fd(), file: f}

	if err := u.enableRelativeAxes(); err != nil {
		u.Close()
		return nil, fmt.Errorf("enable relative axes: %w", err)
	}
	if err := u.createDevice(); err != nil {
		u.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return u, nil
}

func (u *UinputPointer) enableRelativeAxes() error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, u.fd, uintptr(uiSetEvbit), uintptr(evRel)); errno != 0 {
		return errno
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, u.fd, uintptr(uiSetRelbit), uintptr(relX)); errno != 0 {
		return errno
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, u.fd, uintptr(uiSetRelbit), uintptr(relY)); errno != 0 {
		return errno
	}
	return nil
}

func (u *UinputPointer) createDevice() error {
	var dev uinputUserDev
	copy(dev.name[:], uinputDeviceName)
	dev.id.bustype = uinputBusUSB
	dev.id.vendor = uinputVendorID
	dev.id.product = uinputProductID

	if _, _, errno := syscall.Syscall(syscall.SYS_WRITE, u.fd, uintptr(unsafe.Pointer(&dev)), unsafe.Sizeof(dev)); errno != 0 {
		return errno
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, u.fd, uintptr(uiDevCreate), 0); errno != 0 {
		return errno
	}
	return nil
}

// Move emits one relative motion report followed by a sync event.
func (u *UinputPointer) Move(dx, dy int) error {
	events := []inputEvent{
		{etype: evRel, code: relX, value: int32(ClampDelta(dx))},
		{etype: evRel, code: relY, value: int32(ClampDelta(dy))},
		{etype: evSyn, code: 0, value: 0},
	}
	for _, ev := range events {
		if _, err := syscall.Write(int(u.fd), (*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev))[:]); err != nil {
			return fmt.Errorf("write input event: %w", err)
		}
	}
	return nil
}

// Close destroys the virtual device.
func (u *UinputPointer) Close() {
	if u.fd != 0 {
		syscall.Syscall(syscall.SYS_IOCTL, u.fd, uintptr(uiDevDestroy), 0)
	}
	if u.file != nil {
		u.file.Close()
		u.file = nil
	}
	u.fd = 0
}

// NewSystemPointer opens the platform pointer sink.
func NewSystemPointer() (Pointer, func(), error) {
	u, err := OpenUinput()
	if err != nil {
		return nil, nil, err
	}
	return u, u.Close, nil
}
