// Package lights arbitrates requests to the device's light hardware: an
// LCD backlight plus one physical RGB LED shared by the notification and
// attention channels.
//
// The package is the only place that reconciles competing requests into
// one physical LED state. A single Controller serializes every operation
// against the sysfs control files; a lit attention request always masks
// notification requests on the shared indicator LED.
//
// Handles come from Open:
//
//	dev, err := lights.Open(lights.Notifications, ctrl)
//	defer dev.Close()
//	err = dev.Apply(lights.State{Color: 0x00FF0000})
package lights
