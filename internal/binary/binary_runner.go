package binary

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	. "github.com/cricklet/chessbot/internal/helpers"
)

// BinaryRunner drives a line based subprocess, eg a UCI engine, over its
// stdin and stdout.
type BinaryRunner struct {
	cmdPath string
	cmd     *exec.Cmd

	stdin  io.WriteCloser
	stdout chan string

	record     []string
	recordLock sync.Mutex

	Logger Logger
}

type BinaryRunnerOption func(*BinaryRunner)

func WithLogger(logger Logger) BinaryRunnerOption {
	return func(u *BinaryRunner) {
		u.Logger = logger
	}
}

func (u *BinaryRunner) CmdPath() string {
	return u.cmdPath
}

func (u *BinaryRunner) appendRecord(line string) {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	u.record = append(u.record, line)
}

func (u *BinaryRunner) flush(indent string) string {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	return Indent(strings.Join(u.record, "\n"), indent)
}

// Flush renders everything sent to and received from the process.
func (u *BinaryRunner) Flush() string {
	return u.flush("> ")
}

func wrapError(u *BinaryRunner, err error) Error {
	if !IsNil(err) {
		return Join(Wrap(err), Errorf("%v\n%v", u.cmdPath, u.flush(".  ")))
	}
	return NilError
}

func SetupBinaryRunner(cmdPath string, args []string, options ...BinaryRunnerOption) (*BinaryRunner, Error) {
	u := &BinaryRunner{
		cmdPath: cmdPath,
		stdout:  make(chan string, 1024),
		Logger:  DefaultLogger,
	}

	for _, option := range options {
		option(u)
	}

	u.Logger.Println(cmdPath, args)
	u.cmd = exec.Command(cmdPath, args...)

	var err error
	u.stdin, err = u.cmd.StdinPipe()
	if err != nil {
		return u, wrapError(u, err)
	}

	stdout, err := u.cmd.StdoutPipe()
	if err != nil {
		return u, wrapError(u, err)
	}
	stderr, err := u.cmd.StderrPipe()
	if err != nil {
		return u, wrapError(u, err)
	}

	go func() {
		defer close(u.stdout)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			u.appendRecord("out: " + line)
			u.stdout <- line
		}
	}()

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			u.appendRecord("err: " + scanner.Text())
		}
	}()

	err = u.cmd.Start()
	if err != nil {
		return u, wrapError(u, err)
	}

	return u, NilError
}

func (u *BinaryRunner) RunAsync(input string) Error {
	if u.cmd == nil {
		return wrapError(u, fmt.Errorf("cmd not running: %v", u.cmdPath))
	}

	u.appendRecord("in:  " + strings.TrimSpace(input))
	_, err := io.WriteString(u.stdin, input+"\n")
	if err != nil {
		return wrapError(u, err)
	}
	return NilError
}

// Run sends input and collects output lines until one contains waitFor. With
// no waitFor it collects whatever arrives before the timeout.
func (u *BinaryRunner) Run(input string, waitFor Optional[string], timeout time.Duration) ([]string, Error) {
	err := u.RunAsync(input)
	if !IsNil(err) {
		return nil, err
	}

	result := []string{}
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-u.stdout:
			if !ok {
				return result, wrapError(u, fmt.Errorf("%v exited", u.cmdPath))
			}
			result = append(result, line)
			if waitFor.HasValue() && strings.Contains(line, waitFor.Value()) {
				return result, NilError
			}
		case <-deadline:
			if waitFor.HasValue() {
				return result, wrapError(u, fmt.Errorf("timeout waiting for %v", waitFor.Value()))
			}
			return result, NilError
		}
	}
}

func (u *BinaryRunner) Close() {
	if u.cmd != nil {
		_ = u.stdin.Close()
		if u.cmd.Process != nil {
			_ = u.cmd.Process.Kill()
			_ = u.cmd.Wait()
		}
		u.cmd = nil
	}
}
