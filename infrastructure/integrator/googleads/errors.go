package googleads

import (
	"context"
	"errors"
	"net"

	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
)

// IsTransient indica erros da plataforma que devem ser repetidos no próximo
// ciclo em vez de derrubar o laço da conta
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *adsdomain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsTransient()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
