//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package csscrack

// Progressor receives the completion of a long scan, in percent.
type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

// Stager is a Progressor that is told the name of each scan as it starts.
type Stager interface {
	Start(stage string)
}

var defaultProgress = Progressor(&nilProgress{})

// SetProgress sets the progress sink used by new scans.
func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}

// Progress counts completed steps of a named scan with a known number of
// steps.
type Progress struct {
	Progressor
	Stage     string
	Completed chan struct{}
	Done      chan struct{}
}

func NewProgress(stage string, total int) (prog *Progress) {
	prog = &Progress{
		Progressor: defaultProgress,
		Stage:      stage,
		Completed:  make(chan struct{}, total),
		Done:       make(chan struct{}),
	}

	go func(prog *Progress) {
		if stager, ok := prog.Progressor.(Stager); ok {
			stager.Start(prog.Stage)
		}

		for completion := 0; completion < total; completion++ {
			prog.Show(float32(completion) * 100.0 / float32(total))
			_, ok := <-prog.Completed
			if !ok {
				break
			}
		}
		prog.Show(100.0)
		prog.Stop()
		close(prog.Done)
	}(prog)

	return
}

// Indicate marks one step as completed. Steps past the total are dropped.
func (prog *Progress) Indicate() {
	select {
	case prog.Completed <- struct{}{}:
	default:
	}
}

// Close finishes the scan, even if it stopped early.
func (prog *Progress) Close() {
	close(prog.Completed)
	<-prog.Done
}
