package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push envía el registry completo al Pushgateway bajo el job indicado.
// Lo usan los comandos batch, que no sirven /metrics. url vacía => no-op.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil || strings.TrimSpace(url) == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics job=%s: %w", job, err)
	}
	return nil
}
