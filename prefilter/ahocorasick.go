package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/luapat/literal"
)

// ahoCorasickPrefilter finds the leftmost occurrence of any of several
// literals. The extractor yields literals of one length, so the leftmost
// occurrence of any literal is also the leftmost candidate start.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	length   int
	complete bool
	size     int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	size := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		length:   seq.MinLen(),
		complete: seq.AllComplete(),
		size:     size,
	}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

func (p *ahoCorasickPrefilter) LiteralLen() int {
	if p.complete {
		return p.length
	}
	return 0
}

// HeapBytes is an estimate: the automaton does not report its size, so the
// literal bytes stand in for it.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.size
}
