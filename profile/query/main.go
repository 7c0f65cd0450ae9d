// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"os"
	"time"

	"github.com/edwinsyarief/retsu"
	"github.com/edwinsyarief/retsu/internal/harness"
	"github.com/sirupsen/logrus"
)

const (
	posX retsu.ComponentID = iota
	posY
	velX
	velY
	mass
	heat
)

type Config struct {
	Common   harness.Common
	Rounds   int `usage:"number of worlds to build"`
	Iters    int `usage:"query runs per world"`
	Entities int `usage:"entities per world"`
}

type report struct {
	Rounds   int     `json:"rounds"`
	Iters    int     `json:"iters"`
	Entities int     `json:"entities"`
	Rows     int     `json:"rows"`
	Seconds  float64 `json:"seconds"`
}

func main() {
	c := Config{
		Common:   harness.DefaultCommon(),
		Rounds:   50,
		Iters:    1000,
		Entities: 100000,
	}
	harness.Load(&c)
	log := harness.Logger("query", c.Common.LogLevel)
	if c.Common.ShowConfig {
		if err := harness.Show(os.Stdout, c); err != nil {
			log.WithError(err).Fatal("cannot print config")
		}
	}

	p := harness.Start(c.Common)
	start := time.Now()
	rows, err := run(c, log)
	p.Stop()
	if err != nil {
		log.WithError(err).Fatal("query harness failed")
	}
	if err := harness.Show(os.Stdout, report{
		Rounds:   c.Rounds,
		Iters:    c.Iters,
		Entities: c.Entities,
		Rows:     rows,
		Seconds:  time.Since(start).Seconds(),
	}); err != nil {
		log.WithError(err).Fatal("cannot print report")
	}
}

func run(c Config, log *logrus.Entry) (int, error) {
	rows := 0
	all := []retsu.ComponentID{posX, posY, velX, velY, mass, heat}
	for round := 0; round < c.Rounds; round++ {
		w, _, err := retsu.NewWorld(retsu.Config{NumEntities: c.Entities, Logger: log})
		if err != nil {
			return rows, err
		}
		for _, id := range all {
			if _, err := retsu.RegisterComponent[int64](w, id, c.Entities); err != nil {
				return rows, err
			}
		}
		if _, err := w.Spawn(all, c.Entities); err != nil {
			return rows, err
		}
		q, err := w.RegisterQuery(all...)
		if err != nil {
			return rows, err
		}
		for i := 0; i < c.Iters; i++ {
			res, err := w.RunQuery(q)
			if err != nil {
				return rows, err
			}
			x, err := retsu.ViewOf[int64](w, posX, res[0])
			if err != nil {
				return rows, err
			}
			vx, err := retsu.ViewOf[int64](w, velX, res[2])
			if err != nil {
				return rows, err
			}
			if err := retsu.IAdd(x, retsu.Operand[int64](vx)); err != nil {
				return rows, err
			}
			n, err := res[0].Len()
			if err != nil {
				return rows, err
			}
			rows += n
		}
		log.WithField("round", round).Debug("round done")
	}
	return rows, nil
}
