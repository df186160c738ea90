package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/computesmoke/gpu"
	"github.com/vkngwrapper/core/v3/core1_0"
)

type queue struct {
	device *device
	queue  core1_0.Queue
}

func (q *queue) Submit(buffer gpu.CommandBuffer) error {
	cmd, ok := buffer.(*commandBuffer)
	if !ok {
		return errors.Newf("command buffer %T was not allocated by this backend", buffer)
	}

	_, err := q.device.driver.QueueSubmit(q.queue, nil,
		core1_0.SubmitInfo{
			CommandBuffers: []core1_0.CommandBuffer{cmd.buffer},
		},
	)
	return err
}

func (q *queue) WaitIdle() error {
	_, err := q.device.driver.QueueWaitIdle(q.queue)
	return err
}

type commandPool struct {
	device *device
	pool   core1_0.CommandPool
}

func (p *commandPool) AllocatePrimary() (gpu.CommandBuffer, error) {
	buffers, _, err := p.device.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        p.pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return nil, err
	}

	return &commandBuffer{device: p.device, buffer: buffers[0]}, nil
}

func (p *commandPool) Destroy() {
	p.device.driver.DestroyCommandPool(p.pool, nil)
}

type commandBuffer struct {
	device *device
	buffer core1_0.CommandBuffer
}

func (b *commandBuffer) Begin() error {
	_, err := b.device.driver.BeginCommandBuffer(b.buffer, core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageSimultaneousUse,
	})
	return err
}

func (b *commandBuffer) End() error {
	_, err := b.device.driver.EndCommandBuffer(b.buffer)
	return err
}

func (b *commandBuffer) Free() {
	b.device.driver.FreeCommandBuffers(b.buffer)
}

type queryPool struct {
	device *device
	pool   core1_0.QueryPool
}

func (p *queryPool) Destroy() {
	p.device.driver.DestroyQueryPool(p.pool, nil)
}
