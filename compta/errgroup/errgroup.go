package errgroup

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/ecomledger/lib-compta/v2/compta/log"
)

// ErrPanicRecovered is returned when a goroutine in the group panics.
var ErrPanicRecovered = errors.New("errgroup: panic recovered")

// Group manages a set of goroutines that share a cancellation context.
// The zero value is usable, has no limit and never cancels anything.
type Group struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	sem     chan struct{}
	errOnce sync.Once
	err     error
	logger  log.Logger
}

// WithContext returns a new Group and a derived context canceled by the
// first error or by Wait, whichever comes first.
func WithContext(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	return &Group{ctx: ctx, cancel: cancel}, ctx
}

// SetLogger sets the logger receiving recovered panics.
func (grp *Group) SetLogger(logger log.Logger) {
	if grp == nil {
		return
	}

	grp.logger = logger
}

// SetLimit bounds the number of goroutines running at once. A limit below
// one removes the bound. It must not be called while goroutines are active.
func (grp *Group) SetLimit(n int) {
	if n < 1 {
		grp.sem = nil

		return
	}

	grp.sem = make(chan struct{}, n)
}

// Go runs fn in a new goroutine, blocking first while the limit is reached.
func (grp *Group) Go(fn func() error) {
	if grp.sem != nil {
		grp.sem <- struct{}{}
	}

	grp.wg.Add(1)

	go func() {
		defer grp.done()
		defer grp.recoverPanic()

		if err := fn(); err != nil {
			grp.fail(err)
		}
	}()
}

// Wait blocks until every goroutine has returned, then returns the first error.
func (grp *Group) Wait() error {
	grp.wg.Wait()

	if grp.cancel != nil {
		grp.cancel()
	}

	return grp.err
}

func (grp *Group) done() {
	if grp.sem != nil {
		<-grp.sem
	}

	grp.wg.Done()
}

func (grp *Group) fail(err error) {
	grp.errOnce.Do(func() {
		grp.err = err
		if grp.cancel != nil {
			grp.cancel()
		}
	})
}

func (grp *Group) recoverPanic() {
	recovered := recover()
	if recovered == nil {
		return
	}

	if grp.logger != nil {
		ctx := grp.ctx
		if ctx == nil {
			ctx = context.Background()
		}

		grp.logger.Log(ctx, log.LevelError, "panic recovered in errgroup",
			log.Any("panic", recovered), log.String("stack", string(debug.Stack())))
	}

	grp.fail(fmt.Errorf("%w: %v", ErrPanicRecovered, recovered))
}
