// Package report holds the observability sinks errors are reported to.
//
// Reporting is fire-and-forget: a Reporter never returns an error and never
// blocks the caller beyond its own bounded publish.
package report

import (
	"context"

	"expensetracker/internal/amqp"
	"expensetracker/internal/api"
	applog "expensetracker/internal/log"
)

// Reporter accepts an error and a short context label.
type Reporter interface {
	Report(ctx context.Context, err error, label string)
}

// Func adapts a plain function to Reporter.
type Func func(ctx context.Context, err error, label string)

func (f Func) Report(ctx context.Context, err error, label string) { f(ctx, err, label) }

// Nop drops every report.
var Nop Reporter = Func(func(context.Context, error, string) {})

// LogReporter writes reports to the structured logger.
type LogReporter struct {
	logger *applog.StructuredLogger
}

func NewLogReporter(logger *applog.Logger) *LogReporter {
	if logger == nil {
		logger = applog.Discard()
	}
	return &LogReporter{logger: applog.NewStructuredLogger(logger)}
}

func (r *LogReporter) Report(ctx context.Context, err error, label string) {
	fields := applog.NewFields().
		WithLabel(label).
		WithErrorType(api.ErrorType(err))
	if code := api.StatusCode(err); code != 0 {
		fields[applog.FieldStatusCode] = code
	}
	r.logger.LogError(ctx, "Operation failed", err, applog.ComponentReport, label, fields)
}

// Publisher is implemented by *amqp.Client.
type Publisher interface {
	PublishErrorReport(ctx context.Context, msg *amqp.ErrorReportMessage) error
}

// AMQPReporter publishes reports to a message queue. Publish failures are
// logged and dropped.
type AMQPReporter struct {
	publisher Publisher
	logger    *applog.Logger
}

func NewAMQPReporter(publisher Publisher, logger *applog.Logger) *AMQPReporter {
	if logger == nil {
		logger = applog.Discard()
	}
	return &AMQPReporter{publisher: publisher, logger: logger.WithComponent(applog.ComponentReport)}
}

func (r *AMQPReporter) Report(ctx context.Context, err error, label string) {
	msg := amqp.NewErrorReportMessage(label, err, api.ErrorType(err), api.StatusCode(err))
	if pubErr := r.publisher.PublishErrorReport(context.WithoutCancel(ctx), msg); pubErr != nil {
		r.logger.WarnContext(ctx, "Failed to publish error report",
			applog.FieldLabel, label,
			applog.FieldError, pubErr.Error())
	}
}

// Multi fans a report out to every non-nil reporter in order.
func Multi(reporters ...Reporter) Reporter {
	var rs []Reporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return Func(func(ctx context.Context, err error, label string) {
		for _, r := range rs {
			r.Report(ctx, err, label)
		}
	})
}
