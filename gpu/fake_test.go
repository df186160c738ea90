package gpu

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/computesmoke/queues"
)

// fakeBackend records every call in order so tests can check acquisition and
// release sequences.
type fakeBackend struct {
	calls []string

	families []queues.Flags
	devices  int
	nilFirst bool

	failAt string
}

func (b *fakeBackend) record(call string) error {
	b.calls = append(b.calls, call)
	if call == b.failAt {
		return errors.Newf("%s: simulated failure", call)
	}
	return nil
}

func (b *fakeBackend) CreateInstance(info InstanceInfo) (Instance, error) {
	if err := b.record("CreateInstance"); err != nil {
		return nil, err
	}
	return &fakeInstance{backend: b}, nil
}

type fakeInstance struct {
	backend *fakeBackend
}

func (i *fakeInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	if err := i.backend.record("PhysicalDevices"); err != nil {
		return nil, err
	}

	var devices []PhysicalDevice
	for n := 0; n < i.backend.devices; n++ {
		if n == 0 && i.backend.nilFirst {
			devices = append(devices, nil)
			continue
		}
		devices = append(devices, &fakePhysicalDevice{backend: i.backend})
	}
	return devices, nil
}

func (i *fakeInstance) Destroy() {
	i.backend.record("DestroyInstance")
}

type fakePhysicalDevice struct {
	backend *fakeBackend
}

func (d *fakePhysicalDevice) QueueFamilies() []queues.Family {
	return queues.FamiliesFromFlags(d.backend.families...)
}

func (d *fakePhysicalDevice) CreateDevice(queueFamilies []int) (Device, error) {
	if err := d.backend.record(fmt.Sprintf("CreateDevice %v", queueFamilies)); err != nil {
		return nil, err
	}
	return &fakeDevice{backend: d.backend}, nil
}

type fakeDevice struct {
	backend *fakeBackend
}

func (d *fakeDevice) GetQueue(queueFamily int) Queue {
	d.backend.record(fmt.Sprintf("GetQueue %d", queueFamily))
	return &fakeQueue{backend: d.backend, family: queueFamily}
}

func (d *fakeDevice) CreateCommandPool(queueFamily int) (CommandPool, error) {
	if err := d.backend.record(fmt.Sprintf("CreateCommandPool %d", queueFamily)); err != nil {
		return nil, err
	}
	return &fakeCommandPool{backend: d.backend}, nil
}

func (d *fakeDevice) CreateQueryPool(queryCount int) (QueryPool, error) {
	if err := d.backend.record(fmt.Sprintf("CreateQueryPool %d", queryCount)); err != nil {
		return nil, err
	}
	return &fakeQueryPool{backend: d.backend}, nil
}

func (d *fakeDevice) WaitIdle() error {
	return d.backend.record("DeviceWaitIdle")
}

func (d *fakeDevice) Destroy() {
	d.backend.record("DestroyDevice")
}

type fakeQueue struct {
	backend *fakeBackend
	family  int
}

func (q *fakeQueue) Submit(buffer CommandBuffer) error {
	if _, ok := buffer.(*fakeCommandBuffer); !ok {
		return errors.New("foreign command buffer")
	}
	return q.backend.record(fmt.Sprintf("Submit %d", q.family))
}

func (q *fakeQueue) WaitIdle() error {
	return q.backend.record(fmt.Sprintf("QueueWaitIdle %d", q.family))
}

type fakeCommandPool struct {
	backend *fakeBackend
}

func (p *fakeCommandPool) AllocatePrimary() (CommandBuffer, error) {
	if err := p.backend.record("AllocateCommandBuffer"); err != nil {
		return nil, err
	}
	return &fakeCommandBuffer{backend: p.backend}, nil
}

func (p *fakeCommandPool) Destroy() {
	p.backend.record("DestroyCommandPool")
}

type fakeCommandBuffer struct {
	backend *fakeBackend
}

func (b *fakeCommandBuffer) Begin() error {
	return b.backend.record("Begin")
}

func (b *fakeCommandBuffer) End() error {
	return b.backend.record("End")
}

func (b *fakeCommandBuffer) Free() {
	b.backend.record("FreeCommandBuffer")
}

type fakeQueryPool struct {
	backend *fakeBackend
}

func (p *fakeQueryPool) Destroy() {
	p.backend.record("DestroyQueryPool")
}
