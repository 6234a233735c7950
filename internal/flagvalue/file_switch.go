package flagvalue

import (
	"flag"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that accepts both "-x" and "-x=value".
// If a value is specified, it names a file to log to.
// Otherwise, logs go to a provided fallback writer.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the path stored in the flag
// or '-' if no value was specified.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the path stored in the flag
// or '-' if no value was specified.
func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag was set with any value.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Logger builds a logger for the destination of this flag,
// and a function to close it.
//
// This has three possible behaviors:
//
//   - the flag wasn't passed in: returns a nil logger
//   - the flag was passed without a value: logs to fallback
//   - the flag was passed with a value: creates the file and logs to it
func (fs *FileSwitch) Logger(fallback io.Writer) (_ *log.Logger, close func() error, err error) {
	switch *fs {
	case "":
		return nil, nopClose, nil
	case "-":
		return log.New(fallback, "", 0), nopClose, nil
	default:
		f, err := os.Create(string(*fs))
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		return log.New(f, "", 0), f.Close, nil
	}
}

func nopClose() error { return nil }
