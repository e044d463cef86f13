package transport

import (
	"errors"
	"fmt"

	"github.com/google/gousb"
	"github.com/hnimtadd/escpos/logger"
)

// Default IDs match the Rongta RP326 family this engine was built
// against.
const (
	DefaultVendorID  uint16 = 0x0FE6
	DefaultProductID uint16 = 0x811E
)

var ErrDeviceNotFound = errors.New("transport: usb device not found")

type USBOptions struct {
	// VendorID and ProductID identify the printer; zero values fall
	// back to the defaults above.
	VendorID  uint16
	ProductID uint16
	Logger    logger.Logger
}

// USB drives a printer over a direct device handle, writing to the
// first OUT endpoint of the device's default interface.
type USB struct {
	conn
	ctx     *gousb.Context
	dev     *gousb.Device
	release func()
}

func OpenUSB(opts USBOptions) (*USB, error) {
	if opts.VendorID == 0 {
		opts.VendorID = DefaultVendorID
	}
	if opts.ProductID == 0 {
		opts.ProductID = DefaultProductID
	}

	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(opts.VendorID), gousb.ID(opts.ProductID))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("transport: open usb %04x:%04x: %w",
			opts.VendorID, opts.ProductID, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: %04x:%04x", ErrDeviceNotFound,
			opts.VendorID, opts.ProductID)
	}

	// The kernel line-printer driver usually owns the device.
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("transport: detach kernel driver: %w", err)
	}

	intf, release, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("transport: claim usb interface: %w", err)
	}

	out, err := firstOutEndpoint(intf)
	if err != nil {
		release()
		dev.Close()
		ctx.Close()
		return nil, err
	}

	u := &USB{ctx: ctx, dev: dev, release: release}
	u.conn = newConn(out, opts.Logger)
	return u, nil
}

func firstOutEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	for _, desc := range intf.Setting.Endpoints {
		if desc.Direction == gousb.EndpointDirectionOut {
			out, err := intf.OutEndpoint(desc.Number)
			if err != nil {
				return nil, fmt.Errorf("transport: open out endpoint %d: %w",
					desc.Number, err)
			}
			return out, nil
		}
	}
	return nil, errors.New("transport: usb interface has no out endpoint")
}

func (u *USB) Close() error {
	u.release()
	err := u.dev.Close()
	if cerr := u.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}
