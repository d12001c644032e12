package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// pageState is one sample of the document.
type pageState struct {
	Ready string `json:"ready"`
	Nodes int    `json:"nodes"`
}

type probeFunc func(ctx context.Context) (pageState, error)

// stability accumulates the samples taken while waiting for the page.
type stability struct {
	Polls  int
	Nodes  int
	Stable bool
}

const stateScript = `({ready: document.readyState, nodes: document.getElementsByTagName('*').length})`

func evaluateProbe(ctx context.Context) (pageState, error) {
	var st pageState
	err := chromedp.Run(ctx, chromedp.Evaluate(stateScript, &st))
	return st, err
}

// waitStable samples the page every settle interval until the document is
// complete and two consecutive samples count the same number of nodes, or
// maxPolls samples were taken.
func waitStable(ctx context.Context, probe probeFunc, settle time.Duration, maxPolls int) (stability, error) {
	acc := stability{Nodes: -1}
	for acc.Polls < maxPolls {
		st, err := probe(ctx)
		if err != nil {
			return acc, err
		}
		acc.Polls++
		if st.Ready == "complete" && st.Nodes == acc.Nodes {
			acc.Stable = true
			return acc, nil
		}
		acc.Nodes = st.Nodes

		timer := time.NewTimer(settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return acc, ctx.Err()
		case <-timer.C:
		}
	}
	return acc, nil
}
