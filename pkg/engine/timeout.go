package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/drillscene/pkg/plan"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Fatal evaluation errors. Timeouts wrap ErrTimeout.
var (
	ErrTimeout    = errors.New("evaluation timed out")
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult is the internal type used to pass evaluation results through channels.
type evalResult struct {
	plan   *plan.Plan
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds EvalTimeout. It uses a generation counter to
// discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*plan.Plan, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		// Check if this result is still relevant (not stale).
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return nil, nil, ErrSuperseded
		}

		return res.plan, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, EvalTimeout)
	}
}
