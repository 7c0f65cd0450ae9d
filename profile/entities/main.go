// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"os"
	"time"

	"github.com/edwinsyarief/retsu"
	"github.com/edwinsyarief/retsu/internal/harness"
	"github.com/sirupsen/logrus"
)

const (
	comp1 retsu.ComponentID = iota
	comp2
)

type Config struct {
	Common   harness.Common
	Rounds   int `usage:"number of worlds to build"`
	Iters    int `usage:"spawn and despawn cycles per world"`
	Entities int `usage:"entities spawned per cycle"`
}

type report struct {
	Spawned   int     `json:"spawned"`
	Despawned int     `json:"despawned"`
	Seconds   float64 `json:"seconds"`
}

func main() {
	c := Config{
		Common:   harness.DefaultCommon(),
		Rounds:   50,
		Iters:    1000,
		Entities: 1000,
	}
	harness.Load(&c)
	log := harness.Logger("entities", c.Common.LogLevel)
	if c.Common.ShowConfig {
		if err := harness.Show(os.Stdout, c); err != nil {
			log.WithError(err).Fatal("cannot print config")
		}
	}

	var r report
	p := harness.Start(c.Common)
	start := time.Now()
	err := run(c, log, &r)
	p.Stop()
	if err != nil {
		log.WithError(err).Fatal("entities harness failed")
	}
	r.Seconds = time.Since(start).Seconds()
	if err := harness.Show(os.Stdout, r); err != nil {
		log.WithError(err).Fatal("cannot print report")
	}
}

func run(c Config, log *logrus.Entry, r *report) error {
	for i := 0; i < c.Rounds; i++ {
		w, ids, err := retsu.NewWorld(retsu.Config{NumEntities: c.Entities, Logger: log})
		if err != nil {
			return err
		}
		retsu.Subscribe(w.Events(), func(e retsu.Spawned) { r.Spawned += len(e.EntityIDs) })
		retsu.Subscribe(w.Events(), func(e retsu.Despawned) { r.Despawned += len(e.EntityIDs) })
		if _, err := retsu.RegisterComponent[int64](w, comp1, c.Entities); err != nil {
			return err
		}
		if _, err := retsu.RegisterComponent[int64](w, comp2, c.Entities); err != nil {
			return err
		}
		q, err := w.RegisterQuery(comp1, comp2)
		if err != nil {
			return err
		}

		for j := 0; j < c.Iters; j++ {
			if _, err := w.Spawn([]retsu.ComponentID{comp1, comp2}, c.Entities); err != nil {
				return err
			}
			if _, err := w.RunQuery(q); err != nil {
				return err
			}
			if err := w.Despawn(ids); err != nil {
				return err
			}
		}
	}
	return nil
}
