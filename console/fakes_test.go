package console

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"pkt.systems/sndbq/schema"
)

type requestRecorder struct {
	mu   sync.Mutex
	reqs []schema.LookupRequest
}

func (r *requestRecorder) Push(req schema.LookupRequest) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return true
}

func (r *requestRecorder) snapshot() []schema.LookupRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]schema.LookupRequest(nil), r.reqs...)
}

type updateRecorder struct {
	updates []schema.Update
	out     chan schema.Update
}

func newUpdateRecorder() *updateRecorder {
	return &updateRecorder{out: make(chan schema.Update)}
}

func (r *updateRecorder) Push(u schema.Update) bool {
	r.updates = append(r.updates, u)
	return true
}

func (r *updateRecorder) Out() <-chan schema.Update {
	return r.out
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeTerminal struct {
	in       io.Reader
	out      bytes.Buffer
	raw      bool
	restored int
	rawErr   error
	failOut  bool
	width    int
	height   int
}

func newFakeTerminal(input string) *fakeTerminal {
	return &fakeTerminal{in: bytes.NewBufferString(input), width: 100, height: 30}
}

func (f *fakeTerminal) Read(p []byte) (int, error) {
	return f.in.Read(p)
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	if f.failOut {
		return 0, errors.New("terminal gone")
	}
	return f.out.Write(p)
}

func (f *fakeTerminal) MakeRaw() (func() error, error) {
	if f.rawErr != nil {
		return nil, f.rawErr
	}
	f.raw = true
	return func() error {
		f.raw = false
		f.restored++
		return nil
	}, nil
}

func (f *fakeTerminal) Size() (int, int, error) {
	if f.width == 0 {
		return 0, 0, errors.New("no size")
	}
	return f.width, f.height, nil
}
