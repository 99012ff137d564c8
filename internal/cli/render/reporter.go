package render

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// Reporter prints one "<Name> contract: <address>" line per deployed proxy
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// ReportDeployed prints the report line for a freshly deployed proxy
func (r *Reporter) ReportDeployed(_ context.Context, logicalName string, address common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s contract: %s\n", logicalName, address.Hex())
}

var _ usecase.DeploymentReporter = (*Reporter)(nil)
