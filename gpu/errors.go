package gpu

import "github.com/cockroachdb/errors"

// Every setup failure is fatal. Backend errors are marked with one of these
// so callers can test the category with errors.Is.
var (
	ErrInstanceCreation = errors.New("failed to create instance")
	ErrNoDevices        = errors.New("failed to find GPUs with Vulkan support")
	ErrNoSuitableDevice = errors.New("failed to find a suitable GPU")
	ErrDeviceCreation   = errors.New("failed to create logical device")
	ErrCommandPool      = errors.New("failed to create command pool")
	ErrCommandBuffer    = errors.New("failed to record command buffer")
	ErrQueryPool        = errors.New("failed to create query pool")
	ErrSubmit           = errors.New("failed to submit command buffer")
)

func mark(err error, category error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), category)
}
