package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Device moves rendered receipt bytes to a thermal printer. Real
// implementations open their transport per job, so a wedged printer
// never holds a device file or socket between receipts.
type Device interface {
	// Print delivers one rendered receipt to the hardware.
	Print(receipt []byte) error
	Close() error
	// Ready reports whether the device looks reachable. It is a
	// health-check hint, not a promise that the next Print succeeds.
	Ready() bool
}

// usbDevice writes receipts straight to a line-printer device file
// such as /dev/usb/lp0.
type usbDevice struct {
	path string
}

func NewUSBDevice(devicePath string) Device {
	return &usbDevice{path: devicePath}
}

func (d *usbDevice) Print(receipt []byte) error {
	f, err := os.OpenFile(d.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", d.path, err)
	}
	defer f.Close()

	if _, err := f.Write(receipt); err != nil {
		return fmt.Errorf("printer: write %s: %w", d.path, err)
	}
	return nil
}

func (d *usbDevice) Close() error { return nil }

func (d *usbDevice) Ready() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// netDevice dials the printer's raw socket, conventionally port 9100.
type netDevice struct {
	address     string
	dialTimeout time.Duration
}

func NewNetworkDevice(address string) Device {
	return &netDevice{address: address, dialTimeout: 5 * time.Second}
}

func (d *netDevice) Print(receipt []byte) error {
	conn, err := net.DialTimeout("tcp", d.address, d.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", d.address, err)
	}
	defer conn.Close()

	// A receipt is a few hundred bytes; if it takes longer than this
	// the printer is jammed or offline.
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(receipt); err != nil {
		return fmt.Errorf("printer: write %s: %w", d.address, err)
	}
	return nil
}

func (d *netDevice) Close() error { return nil }

func (d *netDevice) Ready() bool {
	conn, err := net.DialTimeout("tcp", d.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullDevice swallows receipts. Used on terminals with no printer
// attached so sale flows never block on hardware.
type nullDevice struct{}

func NewNullDevice() Device {
	return &nullDevice{}
}

func (d *nullDevice) Print([]byte) error { return nil }
func (d *nullDevice) Close() error       { return nil }
func (d *nullDevice) Ready() bool        { return false }

// Open builds a Device from the printer settings. kind is "usb",
// "network", or "none"; an empty kind means no printer configured.
func Open(kind, devicePath, address string) (Device, error) {
	switch kind {
	case "usb":
		if devicePath == "" {
			return nil, fmt.Errorf("printer: usb device path not set")
		}
		return NewUSBDevice(devicePath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network address not set")
		}
		return NewNetworkDevice(address), nil
	case "none", "":
		return NewNullDevice(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", kind)
	}
}
