package gpu

import "github.com/vkngwrapper/computesmoke/queues"

// InstanceInfo is passed to Backend.CreateInstance.
type InstanceInfo struct {
	ApplicationName string
	EngineName      string
}

// Backend creates API instances. gpu/vkng implements it on top of a Vulkan
// driver; tests supply fakes.
type Backend interface {
	CreateInstance(info InstanceInfo) (Instance, error)
}

type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	Destroy()
}

type PhysicalDevice interface {
	QueueFamilies() []queues.Family

	// CreateDevice creates a logical device with one queue at priority 1.0
	// for each listed family.
	CreateDevice(queueFamilies []int) (Device, error)
}

type Device interface {
	// GetQueue returns queue 0 of a family requested at device creation.
	GetQueue(queueFamily int) Queue
	CreateCommandPool(queueFamily int) (CommandPool, error)
	CreateQueryPool(queryCount int) (QueryPool, error)
	WaitIdle() error
	Destroy()
}

type Queue interface {
	Submit(buffer CommandBuffer) error
	WaitIdle() error
}

type CommandPool interface {
	AllocatePrimary() (CommandBuffer, error)
	Destroy()
}

type CommandBuffer interface {
	Begin() error
	End() error
	Free()
}

type QueryPool interface {
	Destroy()
}
