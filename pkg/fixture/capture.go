package fixture

import (
	"os"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/rs/zerolog"
)

// Capture redirects the process's stdout and stderr into per-test buffers,
// transparently to code under test. Reads have delta semantics: each read
// returns only what accumulated since that stream's previous read, never
// the same output twice. The two streams keep independent cursors, so
// reading stdout does not drain stderr.
//
// The buffers are backed by files rather than pipes, keeping reads
// synchronous and deterministic; nothing here suspends mid-test. Code that
// grabbed os.Stdout before setup keeps writing to the real stream.
type Capture struct {
	logger zerolog.Logger

	outFile *os.File
	errFile *os.File
	origOut *os.File
	origErr *os.File
	outOff  int64
	errOff  int64
	active  bool
}

func newCapture() *Capture {
	return &Capture{
		logger: logging.GetLogger("fixture.capture"),
	}
}

// Name implements Capability.
func (c *Capture) Name() string { return "capture" }

// SetUp implements Capability: both standard streams are swapped for
// capture buffers for the test's duration.
func (c *Capture) SetUp(tc *TestContext) error {
	dir := tc.runner.TempDir()

	outFile, err := os.CreateTemp(dir, "stdout-*.cap")
	if err != nil {
		return errors.Wrap(err, errors.ErrCaptureSetup, "creating stdout capture buffer")
	}
	errFile, err := os.CreateTemp(dir, "stderr-*.cap")
	if err != nil {
		_ = outFile.Close()
		_ = os.Remove(outFile.Name())
		return errors.Wrap(err, errors.ErrCaptureSetup, "creating stderr capture buffer")
	}

	c.outFile, c.errFile = outFile, errFile
	c.origOut, c.origErr = os.Stdout, os.Stderr
	c.outOff, c.errOff = 0, 0
	os.Stdout = outFile
	os.Stderr = errFile
	c.active = true
	return nil
}

// TearDown implements Capability: the real streams come back and the
// buffers are discarded; captured output does not outlive the test.
func (c *Capture) TearDown(tc *TestContext) error {
	if !c.active {
		return nil
	}
	c.active = false

	os.Stdout = c.origOut
	os.Stderr = c.origErr

	for _, f := range []*os.File{c.outFile, c.errFile} {
		if err := f.Close(); err != nil {
			c.logger.Debug().Str("buffer", f.Name()).Err(err).Msg("Closing capture buffer")
		}
		if err := os.Remove(f.Name()); err != nil {
			c.logger.Debug().Str("buffer", f.Name()).Err(err).Msg("Removing capture buffer")
		}
	}
	return nil
}

// ReadOut drains and returns the stdout captured since the last ReadOut
// or ReadBoth.
func (c *Capture) ReadOut() string {
	return c.readDelta(c.outFile, &c.outOff)
}

// ReadErr drains and returns the stderr captured since the last ReadErr
// or ReadBoth.
func (c *Capture) ReadErr() string {
	return c.readDelta(c.errFile, &c.errOff)
}

// ReadBoth drains both streams and returns (stdout, stderr).
func (c *Capture) ReadBoth() (string, string) {
	return c.ReadOut(), c.ReadErr()
}

func (c *Capture) readDelta(f *os.File, offset *int64) string {
	if !c.active {
		return ""
	}

	info, err := f.Stat()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Cannot stat capture buffer")
		return ""
	}
	size := info.Size()
	if size <= *offset {
		return ""
	}

	buf := make([]byte, size-*offset)
	n, err := f.ReadAt(buf, *offset)
	if err != nil && n == 0 {
		c.logger.Warn().Err(err).Msg("Cannot read capture buffer")
		return ""
	}
	*offset += int64(n)
	return string(buf[:n])
}
