// Profiling:
// go build ./profile/operators
// go tool pprof -http=":8000" -nodefraction=0.001 ./operators cpu.pprof

package main

import (
	"os"
	"time"

	"github.com/edwinsyarief/retsu"
	"github.com/edwinsyarief/retsu/internal/harness"
	"github.com/sirupsen/logrus"
)

const (
	position retsu.ComponentID = iota
	velocity
	energy
)

type Config struct {
	Common   harness.Common
	Iters    int     `usage:"simulation steps"`
	Entities int     `usage:"number of agents"`
	Dt       float64 `usage:"time step"`
	Decay    float32 `usage:"energy lost per step"`
}

type report struct {
	Steps    int     `json:"steps"`
	Entities int     `json:"entities"`
	Starved  int     `json:"starved"`
	Seconds  float64 `json:"seconds"`
}

func main() {
	c := Config{
		Common:   harness.DefaultCommon(),
		Iters:    1000,
		Entities: 100000,
		Dt:       0.016,
		Decay:    0.01,
	}
	harness.Load(&c)
	log := harness.Logger("operators", c.Common.LogLevel)
	if c.Common.ShowConfig {
		if err := harness.Show(os.Stdout, c); err != nil {
			log.WithError(err).Fatal("cannot print config")
		}
	}

	p := harness.Start(c.Common)
	start := time.Now()
	starved, err := run(c, log)
	p.Stop()
	if err != nil {
		log.WithError(err).Fatal("operators harness failed")
	}
	if err := harness.Show(os.Stdout, report{
		Steps:    c.Iters,
		Entities: c.Entities,
		Starved:  starved,
		Seconds:  time.Since(start).Seconds(),
	}); err != nil {
		log.WithError(err).Fatal("cannot print report")
	}
}

// run integrates position by velocity, drains energy, and zeroes the
// velocity of agents whose energy ran out.
func run(c Config, log *logrus.Entry) (int, error) {
	w, _, err := retsu.NewWorld(retsu.Config{NumEntities: c.Entities, Logger: log})
	if err != nil {
		return 0, err
	}
	if _, err := retsu.RegisterComponent[float64](w, position, c.Entities); err != nil {
		return 0, err
	}
	if _, err := retsu.RegisterComponent[float64](w, velocity, c.Entities); err != nil {
		return 0, err
	}
	if _, err := retsu.RegisterComponent[float32](w, energy, c.Entities); err != nil {
		return 0, err
	}
	if _, err := w.Spawn([]retsu.ComponentID{position, velocity, energy}, c.Entities); err != nil {
		return 0, err
	}
	q, err := w.RegisterQuery(position, velocity, energy)
	if err != nil {
		return 0, err
	}
	rows, err := w.RunQuery(q)
	if err != nil {
		return 0, err
	}
	pos, err := retsu.ViewOf[float64](w, position, rows[0])
	if err != nil {
		return 0, err
	}
	vel, err := retsu.ViewOf[float64](w, velocity, rows[1])
	if err != nil {
		return 0, err
	}
	en, err := retsu.ViewOf[float32](w, energy, rows[2])
	if err != nil {
		return 0, err
	}
	if err := vel.Fill(retsu.Scalar(1.0)); err != nil {
		return 0, err
	}
	if err := en.Fill(retsu.Scalar[float32](1)); err != nil {
		return 0, err
	}

	step, err := retsu.Mul(vel, retsu.Scalar(c.Dt))
	if err != nil {
		return 0, err
	}
	starved := 0
	for i := 0; i < c.Iters; i++ {
		if err := retsu.IAdd(pos, retsu.Operand[float64](step)); err != nil {
			return starved, err
		}
		if err := retsu.ISub(en, retsu.Scalar(c.Decay)); err != nil {
			return starved, err
		}
		empty, err := retsu.Le(en, retsu.Scalar[float32](0))
		if err != nil {
			return starved, err
		}
		mask, err := retsu.CompareMask(retsu.CmpLe, en, retsu.Scalar[float32](0))
		if err != nil {
			return starved, err
		}
		if err := en.Assign(retsu.Where(empty), retsu.Scalar[float32](0)); err != nil {
			return starved, err
		}
		if err := vel.Assign(mask, retsu.Scalar(0.0)); err != nil {
			return starved, err
		}
		if err := step.Assign(mask, retsu.Scalar(0.0)); err != nil {
			return starved, err
		}
		if starved, err = empty.Len(); err != nil {
			return starved, err
		}
		log.WithFields(logrus.Fields{"step": i, "starved": starved}).Debug("step done")
	}
	return starved, nil
}
