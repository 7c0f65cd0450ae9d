// Package harness holds the setup shared by the profiling programs under
// profile/: environment and flag configuration, logging, profiling and
// report output.
package harness

import (
	"io"
	"os"
	"strings"

	"github.com/fulldump/goconfig"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

// Common are the options every harness accepts.
type Common struct {
	LogLevel   string `usage:"log level: debug | info | warn | error"`
	Profile    string `usage:"profile mode: cpu | mem | allocs | none"`
	Dir        string `usage:"directory the profile is written to"`
	ShowConfig bool   `usage:"print the resolved configuration"`
}

// DefaultCommon returns the defaults of Common.
func DefaultCommon() Common {
	return Common{
		LogLevel: "info",
		Profile:  "allocs",
		Dir:      ".",
	}
}

// Load reads .env into the environment, then fills c from environment and
// flags. Nested structs such as Common are read under their field name.
func Load(c any) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file, using environment and flags only")
	}
	goconfig.Read(c)
}

// Logger returns a JSON logger at level for the harness name.
func Logger(name, level string) *logrus.Entry {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.WithError(err).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l.WithField("harness", name)
}

// Stopper ends a profiling session.
type Stopper interface {
	Stop()
}

type noop struct{}

func (noop) Stop() {}

// Start begins profiling in c.Profile mode. Call Stop on the result when
// the measured work is done.
func Start(c Common) Stopper {
	opts := []func(*profile.Profile){profile.ProfilePath(c.Dir), profile.NoShutdownHook, profile.Quiet}
	switch strings.ToLower(c.Profile) {
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfile)...)
	case "allocs":
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	}
	return noop{}
}

// Show writes v as indented JSON.
func Show(w io.Writer, v any) error {
	if err := json2.MarshalWrite(w, v, jsontext.WithIndent("    ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
