package window

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulse swings between 0 and 1 and back, forever. It animates the prompt
// and the next button.
type pulse struct {
	seq   *gween.Sequence
	value float32
}

func newPulse(period float32) *pulse {
	half := period / 2
	seq := gween.NewSequence()
	seq.Add(
		gween.New(0, 1, half, ease.InOutSine),
		gween.New(1, 0, half, ease.InOutSine),
	)
	return &pulse{seq: seq}
}

// update advances by dt seconds.
func (p *pulse) update(dt float32) float32 {
	v, _, done := p.seq.Update(dt)
	p.value = v
	if done {
		p.seq.Reset()
	}
	return v
}
