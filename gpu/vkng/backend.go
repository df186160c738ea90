// Package vkng implements gpu.Backend on top of the vkngwrapper Vulkan
// bindings.
package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/computesmoke/gpu"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// Loader names accepted by NewBackend.
const (
	LoaderSystem = "system"
	LoaderSDL    = "sdl"
)

type Backend struct {
	globalDriver core1_0.GlobalDriver
	close        func()
}

// NewBackend builds a backend using the named loader.
func NewBackend(loader string) (*Backend, error) {
	switch loader {
	case LoaderSystem:
		return NewSystemBackend()
	case LoaderSDL:
		return NewSDLBackend()
	default:
		return nil, errors.Newf("unknown loader %q: want %s or %s", loader, LoaderSystem, LoaderSDL)
	}
}

// NewSystemBackend loads the Vulkan loader installed on the system.
func NewSystemBackend() (*Backend, error) {
	globalDriver, err := core.CreateSystemDriver()
	if err != nil {
		return nil, errors.Wrap(err, "load system vulkan driver")
	}

	return &Backend{globalDriver: globalDriver}, nil
}

// NewSDLBackend loads Vulkan through SDL, the way windowed programs do. No
// window is created.
func NewSDLBackend() (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "init sdl video")
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "load vulkan library through sdl")
	}

	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "create driver from sdl proc addr")
	}

	return &Backend{
		globalDriver: globalDriver,
		close: func() {
			sdl.VulkanUnloadLibrary()
			sdl.Quit()
		},
	}, nil
}

// Close releases the loader. Instances created from the backend must be
// destroyed first.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

func (b *Backend) CreateInstance(info gpu.InstanceInfo) (gpu.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    info.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         info.EngineName,
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_0,
	}

	extensions, _, err := b.globalDriver.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "list instance extensions")
	}

	// Portability drivers (MoltenVK) only enumerate when asked to.
	_, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]
	if enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	instanceHandle, _, err := b.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	instanceDriver, err := b.globalDriver.BuildInstanceDriver(instanceHandle)
	if err != nil {
		return nil, errors.Wrap(err, "build instance driver")
	}

	return &instance{driver: instanceDriver}, nil
}
