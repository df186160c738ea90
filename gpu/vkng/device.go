package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/computesmoke/gpu"
	"github.com/vkngwrapper/computesmoke/queues"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

type instance struct {
	driver core1_0.CoreInstanceDriver
}

func (i *instance) PhysicalDevices() ([]gpu.PhysicalDevice, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]gpu.PhysicalDevice, 0, len(physicalDevices))
	for _, physicalDevice := range physicalDevices {
		devices = append(devices, &physicalDeviceHandle{instance: i, device: physicalDevice})
	}
	return devices, nil
}

func (i *instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

type physicalDeviceHandle struct {
	instance *instance
	device   core1_0.PhysicalDevice
}

func (p *physicalDeviceHandle) QueueFamilies() []queues.Family {
	props := p.instance.driver.GetPhysicalDeviceQueueFamilyProperties(p.device)

	families := make([]queues.Family, 0, len(props))
	for queueFamilyIdx, queueFamily := range props {
		families = append(families, queues.Family{
			Index: queueFamilyIdx,
			Flags: queues.Flags(queueFamily.QueueFlags),
		})
	}
	return families
}

func (p *physicalDeviceHandle) CreateDevice(queueFamilies []int) (gpu.Device, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range queueFamilies {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string

	// Required on portability implementations whenever they advertise it.
	extensions, _, err := p.instance.driver.EnumerateDeviceExtensionProperties(p.device)
	if err != nil {
		return nil, errors.Wrap(err, "list device extensions")
	}
	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	deviceHandle, _, err := p.instance.driver.CreateDevice(p.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, err
	}

	deviceDriver, err := p.instance.driver.BuildDeviceDriver(deviceHandle)
	if err != nil {
		return nil, errors.Wrap(err, "build device driver")
	}

	return &device{driver: deviceDriver}, nil
}

type device struct {
	driver core1_0.CoreDeviceDriver
}

func (d *device) GetQueue(queueFamily int) gpu.Queue {
	return &queue{device: d, queue: d.driver.GetQueue(queueFamily, 0)}
}

func (d *device) CreateCommandPool(queueFamily int) (gpu.CommandPool, error) {
	pool, _, err := d.driver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: queueFamily,
	})
	if err != nil {
		return nil, err
	}

	return &commandPool{device: d, pool: pool}, nil
}

func (d *device) CreateQueryPool(queryCount int) (gpu.QueryPool, error) {
	pool, _, err := d.driver.CreateQueryPool(nil, core1_0.QueryPoolCreateInfo{
		QueryType:  core1_0.QueryTypeTimestamp,
		QueryCount: queryCount,
	})
	if err != nil {
		return nil, err
	}

	return &queryPool{device: d, pool: pool}, nil
}

func (d *device) WaitIdle() error {
	_, err := d.driver.DeviceWaitIdle()
	return err
}

func (d *device) Destroy() {
	d.driver.DestroyDevice(nil)
}
