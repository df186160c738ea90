package gpu

import (
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/computesmoke/queues"
)

// Report summarises a successful run.
type Report struct {
	DeviceIndex   int
	Families      []queues.Family
	Selection     queues.Selection
	QueueFamilies []int
	SubmitLatency time.Duration
}

// Run performs the full smoke test: it records an empty command buffer,
// submits it to the selected compute queue and waits for the queue to drain.
// Every acquired object is released before Run returns, on success or error.
func Run(backend Backend, cfg Config, logger *log.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, errors.Wrap(err, "invalid config")
	}

	ctx := NewContext(backend, cfg, logger)
	defer ctx.Destroy()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"init instance", ctx.InitInstance},
		{"enumerate device", ctx.InitEnumerateDevice},
		{"init device", ctx.InitDevice},
		{"init device queue", ctx.InitDeviceQueue},
		{"init command pool", ctx.InitCommandPool},
		{"init command buffer", ctx.InitCommandBuffer},
		{"init query pool", ctx.InitQueryPool},
		{"begin command buffer", ctx.ExecuteBeginCommandBuffer},
		{"end command buffer", ctx.ExecuteEndCommandBuffer},
		{"submit and wait", ctx.ExecuteSubmitAndWait},
	}

	for _, step := range steps {
		ctx.Logger.Printf("%s", step.name)
		if err := step.fn(); err != nil {
			return Report{}, errors.Wrap(err, step.name)
		}
	}

	return Report{
		DeviceIndex:   ctx.DeviceIndex,
		Families:      ctx.QueueProps,
		Selection:     ctx.Selection,
		QueueFamilies: ctx.DeviceQueueFamilies,
		SubmitLatency: ctx.SubmitLatency,
	}, nil
}
