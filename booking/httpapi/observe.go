package httpapi

import (
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/booking/shared/shell/observable"
)

// Observability is what the handlers get instrumented with. Nil members are skipped.
type Observability struct {
	Metrics shell.MetricsCollector
	Tracing shell.TracingCollector
	Logger  shell.ContextualLogger
}

// Observe wraps every handler of h in an observable wrapper.
func (h Handlers) Observe(obs Observability) (Handlers, error) {
	var (
		out Handlers
		err error
	)

	if out.RegisterResource, err = ObserveCommand(h.RegisterResource, obs); err != nil {
		return Handlers{}, err
	}

	if out.Request, err = ObserveCommand(h.Request, obs); err != nil {
		return Handlers{}, err
	}

	if out.Approve, err = ObserveCommand(h.Approve, obs); err != nil {
		return Handlers{}, err
	}

	if out.Reject, err = ObserveCommand(h.Reject, obs); err != nil {
		return Handlers{}, err
	}

	if out.Cancel, err = ObserveCommand(h.Cancel, obs); err != nil {
		return Handlers{}, err
	}

	if out.Delete, err = ObserveCommand(h.Delete, obs); err != nil {
		return Handlers{}, err
	}

	if out.ForResource, err = observeQuery(h.ForResource, obs); err != nil {
		return Handlers{}, err
	}

	if out.ByRequester, err = observeQuery(h.ByRequester, obs); err != nil {
		return Handlers{}, err
	}

	if out.ByOwner, err = observeQuery(h.ByOwner, obs); err != nil {
		return Handlers{}, err
	}

	if out.All, err = observeQuery(h.All, obs); err != nil {
		return Handlers{}, err
	}

	if out.Details, err = observeQuery(h.Details, obs); err != nil {
		return Handlers{}, err
	}

	return out, nil
}

// ObserveCommand wraps one command handler.
func ObserveCommand[C shell.Command](h shell.CommandHandler[C], obs Observability) (shell.CommandHandler[C], error) {
	options := make([]observable.CommandOption[C], 0, 3)

	if obs.Metrics != nil {
		options = append(options, observable.WithCommandMetrics[C](obs.Metrics))
	}

	if obs.Tracing != nil {
		options = append(options, observable.WithCommandTracing[C](obs.Tracing))
	}

	if obs.Logger != nil {
		options = append(options, observable.WithCommandContextualLogging[C](obs.Logger))
	}

	wrapper, err := observable.NewCommandWrapper(h, options...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func observeQuery[Q shell.Query, R any](h shell.QueryHandler[Q, R], obs Observability) (shell.QueryHandler[Q, R], error) {
	options := make([]observable.QueryOption[Q, R], 0, 3)

	if obs.Metrics != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](obs.Metrics))
	}

	if obs.Tracing != nil {
		options = append(options, observable.WithQueryTracing[Q, R](obs.Tracing))
	}

	if obs.Logger != nil {
		options = append(options, observable.WithQueryContextualLogging[Q, R](obs.Logger))
	}

	wrapper, err := observable.NewQueryWrapper(h, options...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
