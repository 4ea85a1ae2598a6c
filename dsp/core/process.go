package core

// Processor is the single-sample process contract shared by every streaming
// component: one input sample in, one output sample out, time advances by one.
type Processor interface {
	ProcessSample(input float64) float64
}

// Source produces samples without an input, e.g. oscillators and noise.
type Source interface {
	NextSample() float64
}

// ProcessorFunc adapts a plain function to [Processor].
type ProcessorFunc func(input float64) float64

// ProcessSample calls f(input).
func (f ProcessorFunc) ProcessSample(input float64) float64 { return f(input) }

// Passthrough returns its input unchanged.
type Passthrough struct{}

// ProcessSample returns input.
func (Passthrough) ProcessSample(input float64) float64 { return input }

// Chain composes processors in order. The output of stage i feeds stage i+1.
// An empty chain behaves like [Passthrough].
type Chain struct {
	stages []Processor
}

// NewChain returns a chain over the given stages. Nil stages are skipped.
func NewChain(stages ...Processor) *Chain {
	c := &Chain{stages: make([]Processor, 0, len(stages))}
	for _, s := range stages {
		c.Append(s)
	}
	return c
}

// Append adds a stage to the end of the chain.
func (c *Chain) Append(p Processor) *Chain {
	if p != nil {
		c.stages = append(c.stages, p)
	}
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// ProcessSample runs input through every stage.
func (c *Chain) ProcessSample(input float64) float64 {
	x := input
	for _, s := range c.stages {
		x = s.ProcessSample(x)
	}
	return x
}

// ProcessBlock runs src through the chain sample by sample into dst.
// dst and src may alias. Only min(len(dst), len(src)) samples are processed.
func (c *Chain) ProcessBlock(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = c.ProcessSample(src[i])
	}
}

// FromSource feeds a source through the chain and returns the chain output.
func (c *Chain) FromSource(src Source) float64 {
	return c.ProcessSample(src.NextSample())
}
