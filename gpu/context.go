// Package gpu walks a compute device through instance creation, queue
// selection, command recording, submission and teardown.
package gpu

import (
	"io"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/computesmoke/queues"
)

// Context holds every object acquired during a run. The Init and Execute
// methods must be called in declaration order; Destroy may be called at any
// point and releases whatever has been acquired so far.
type Context struct {
	Backend Backend
	Config  Config
	Logger  *log.Logger

	Instance       Instance
	PhysicalDevice PhysicalDevice
	DeviceIndex    int
	QueueProps     []queues.Family
	Selection      queues.Selection

	Device              Device
	DeviceQueueFamilies []int
	ComputeQueue        Queue
	GraphicsQueue       Queue

	CmdPool   CommandPool
	Cmd       CommandBuffer
	QueryPool QueryPool

	SubmitLatency time.Duration
}

func NewContext(backend Backend, cfg Config, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Context{
		Backend: backend,
		Config:  cfg,
		Logger:  logger,
	}
}

func (c *Context) InitInstance() error {
	instance, err := c.Backend.CreateInstance(InstanceInfo{
		ApplicationName: c.Config.ApplicationName,
		EngineName:      c.Config.EngineName,
	})
	if err != nil {
		return mark(err, ErrInstanceCreation, "create instance")
	}
	c.Instance = instance
	return nil
}

// InitEnumerateDevice takes the first physical device the instance reports
// and selects its queue families.
func (c *Context) InitEnumerateDevice() error {
	devices, err := c.Instance.PhysicalDevices()
	if err != nil {
		return mark(err, ErrNoDevices, "enumerate physical devices")
	}
	if len(devices) == 0 {
		return ErrNoDevices
	}

	// No suitability scoring: the first device is the one under test.
	c.PhysicalDevice = devices[0]
	c.DeviceIndex = 0
	if c.PhysicalDevice == nil {
		return ErrNoSuitableDevice
	}

	c.QueueProps = c.PhysicalDevice.QueueFamilies()
	c.Selection = queues.Select(c.QueueProps)

	for _, family := range c.QueueProps {
		c.Logger.Printf("device %d queue family %s", c.DeviceIndex, family)
	}
	c.Logger.Printf("selected queue families %s", c.Selection)
	return nil
}

func (c *Context) InitDevice() error {
	if !c.Selection.IsComplete() {
		return errors.Wrapf(queues.ErrNoComputeFamily, "physical device %d", c.DeviceIndex)
	}

	families := c.Selection.UniqueFamilies()
	device, err := c.PhysicalDevice.CreateDevice(families)
	if err != nil {
		return mark(err, ErrDeviceCreation, "create device")
	}
	c.Device = device
	c.DeviceQueueFamilies = families
	return nil
}

// InitDeviceQueue fetches one queue for each selected family.
func (c *Context) InitDeviceQueue() error {
	computeFamily, err := c.Selection.ComputeFamily()
	if err != nil {
		return err
	}
	c.ComputeQueue = c.Device.GetQueue(computeFamily)

	graphicsFamily, ok := c.Selection.Graphics().Get()
	if !ok {
		return nil
	}
	if graphicsFamily == computeFamily {
		c.GraphicsQueue = c.ComputeQueue
		return nil
	}
	c.GraphicsQueue = c.Device.GetQueue(graphicsFamily)
	return nil
}

func (c *Context) InitCommandPool() error {
	computeFamily, err := c.Selection.ComputeFamily()
	if err != nil {
		return err
	}

	pool, err := c.Device.CreateCommandPool(computeFamily)
	if err != nil {
		return mark(err, ErrCommandPool, "create command pool")
	}
	c.CmdPool = pool
	return nil
}

func (c *Context) InitCommandBuffer() error {
	buffer, err := c.CmdPool.AllocatePrimary()
	if err != nil {
		return mark(err, ErrCommandBuffer, "allocate command buffer")
	}
	c.Cmd = buffer
	return nil
}

func (c *Context) InitQueryPool() error {
	pool, err := c.Device.CreateQueryPool(c.Config.QueryCount)
	if err != nil {
		return mark(err, ErrQueryPool, "create query pool")
	}
	c.QueryPool = pool
	return nil
}

func (c *Context) ExecuteBeginCommandBuffer() error {
	if err := c.Cmd.Begin(); err != nil {
		return mark(err, ErrCommandBuffer, "begin command buffer")
	}
	return nil
}

func (c *Context) ExecuteEndCommandBuffer() error {
	if err := c.Cmd.End(); err != nil {
		return mark(err, ErrCommandBuffer, "end command buffer")
	}
	return nil
}

// ExecuteSubmitAndWait submits the command buffer to the compute queue and
// blocks until the queue is idle.
func (c *Context) ExecuteSubmitAndWait() error {
	start := hrtime.Now()

	if err := c.ComputeQueue.Submit(c.Cmd); err != nil {
		return mark(err, ErrSubmit, "submit command buffer")
	}
	if err := c.ComputeQueue.WaitIdle(); err != nil {
		return mark(err, ErrSubmit, "wait for compute queue")
	}

	c.SubmitLatency = hrtime.Since(start)
	c.Logger.Printf("submit and wait took %v", c.SubmitLatency)
	return nil
}

// Destroy waits for the device to go idle, then releases everything in
// reverse acquisition order. It is safe to call more than once.
func (c *Context) Destroy() {
	// A pending command buffer must not be freed, which can happen when
	// submission succeeded but the queue wait failed.
	if c.Device != nil {
		if err := c.Device.WaitIdle(); err != nil {
			c.Logger.Printf("could not wait for device idle: %v", err)
		}
	}

	if c.QueryPool != nil {
		c.QueryPool.Destroy()
		c.QueryPool = nil
	}

	if c.Cmd != nil {
		c.Cmd.Free()
		c.Cmd = nil
	}

	if c.CmdPool != nil {
		c.CmdPool.Destroy()
		c.CmdPool = nil
	}

	if c.Device != nil {
		c.Device.Destroy()
		c.Device = nil
		c.ComputeQueue = nil
		c.GraphicsQueue = nil
	}

	if c.Instance != nil {
		c.Instance.Destroy()
		c.Instance = nil
		c.PhysicalDevice = nil
	}
}
