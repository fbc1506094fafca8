package controllers

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/errors"
	"github.com/PancyStudios/SuspensionBotGo/pkg/logger"
)

// Sweeper runs one reconciliation pass on a fixed delay: the next run is
// scheduled only after the previous one finishes, so a slow pass never
// overlaps itself.
type Sweeper struct {
	Name     string
	Interval time.Duration
	Run      func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSweeper builds a named sweeper. Call Start to begin the loop.
func NewSweeper(name string, interval time.Duration, run func()) *Sweeper {
	return &Sweeper{
		Name:     name,
		Interval: interval,
		Run:      run,
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop in its own goroutine. The first pass happens after
// one full interval, not immediately.
func (s *Sweeper) Start() {
	logger.System(fmt.Sprintf("Iniciando loop '%s' cada %v", s.Name, s.Interval), "Scheduler")
	s.wg.Add(1)
	go s.loop()
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(s.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.runOnce()
			timer.Reset(s.Interval)
		case <-s.stopChan:
			return
		}
	}
}

// runOnce executes one pass under the anti-crash recovery so a panicking
// pass kills neither the loop nor the process.
func (s *Sweeper) runOnce() {
	defer errors.RecoverMiddleware()()
	s.Run()
}

// Stop ends the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}
