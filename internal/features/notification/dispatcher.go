package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/email"
	"go-cra/internal/features/request"
	"go-cra/internal/workflow"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

// FlowSource supplies stored flow-rule overrides; events without an override
// fall back to the built-in defaults.
type FlowSource interface {
	FlowOverrides(ctx context.Context) ([]FlowRule, error)
}

// Recipients resolves roles to the users currently holding them.
type Recipients interface {
	ListByRoles(ctx context.Context, roles []workflow.Role) ([]common_models.User, error)
}

type Dispatcher struct {
	Repo       NotificationRepository
	Recipients Recipients
	Email      email.EmailService
	Flows      FlowSource
	Hub        *Hub
	Log        *zap.Logger
}

func NewDispatcher(repo NotificationRepository, recipients Recipients, emailService email.EmailService, flows FlowSource, hub *Hub, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		Repo:       repo,
		Recipients: recipients,
		Email:      emailService,
		Flows:      flows,
		Hub:        hub,
		Log:        log,
	}
}

var emailTemplate = template.Must(template.New("notification").Parse(`<html>
<body>
<h3>{{.Title}}</h3>
<p>{{.Message}}</p>
<p>Request <b>{{.RequestNo}}</b> &mdash; {{.RequestTitle}} ({{.CustomerName}})</p>
<p>Current status: <b>{{.Status}}</b></p>
</body>
</html>`))

// DispatchRequestEvent looks up the flow rule for the event, evaluates its
// condition against the request and fans the notification out to every user
// holding one of the rule's roles. It satisfies the request service's
// Notifier.
func (d *Dispatcher) DispatchRequestEvent(ctx context.Context, event string, req *request.Request) error {
	rule, ok := d.ruleFor(ctx, event)
	if !ok {
		return nil
	}

	fire, err := evalCondition(rule.Condition, event, req)
	if err != nil {
		d.Log.Warn("flow condition failed, rule skipped",
			zap.String("event", event), zap.Error(err))
		return nil
	}
	if !fire {
		return nil
	}

	users, err := d.Recipients.ListByRoles(ctx, rule.Roles)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	title, message := renderText(event, req)

	var firstErr error
	for _, u := range users {
		if rule.InApp {
			n := &Notification{
				UserID:    u.ID.Hex(),
				Event:     event,
				RequestID: req.ID.Hex(),
				RequestNo: req.RequestNo,
				Title:     title,
				Message:   message,
			}
			if err := d.Repo.Create(ctx, n); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if d.Hub != nil {
				d.Hub.Push(n.UserID, n)
			}
		}

		if rule.Email && u.Email != "" {
			body, err := renderEmail(title, message, req)
			if err == nil {
				err = d.Email.SendEmail(ctx, []string{u.Email}, title, body)
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (d *Dispatcher) ruleFor(ctx context.Context, event string) (FlowRule, bool) {
	rules := DefaultFlowRules()
	if d.Flows != nil {
		if overrides, err := d.Flows.FlowOverrides(ctx); err == nil {
			for _, o := range overrides {
				replaced := false
				for i, r := range rules {
					if r.Event == o.Event {
						rules[i] = o
						replaced = true
						break
					}
				}
				if !replaced {
					rules = append(rules, o)
				}
			}
		}
	}

	for _, r := range rules {
		if r.Event == event {
			return r, true
		}
	}
	return FlowRule{}, false
}

// evalCondition runs the rule's tengo script, if any. The script sees the
// request as a map and may flip `notify` to false to suppress the rule.
func evalCondition(condition, event string, req *request.Request) (bool, error) {
	if condition == "" {
		return true, nil
	}

	script := tengo.NewScript([]byte(condition))
	_ = script.Add("notify", true)
	_ = script.Add("event", event)
	_ = script.Add("request", map[string]interface{}{
		"requestNo":    req.RequestNo,
		"title":        req.Title,
		"customerName": req.CustomerName,
		"priority":     req.Priority,
		"status":       string(req.Status),
		"createdBy":    req.CreatedBy,
	})

	compiled, err := script.RunContext(context.Background())
	if err != nil {
		return false, fmt.Errorf("run condition: %w", err)
	}

	return compiled.Get("notify").Bool(), nil
}

func renderText(event string, req *request.Request) (title, message string) {
	switch event {
	case workflow.EventRequestCreated:
		title = fmt.Sprintf("New request %s", req.RequestNo)
		message = fmt.Sprintf("%s submitted a new request for %s.", req.CreatedBy, req.CustomerName)
	default:
		title = fmt.Sprintf("Request %s is now %s", req.RequestNo, req.Status)
		message = fmt.Sprintf("The status of %q changed to %s.", req.Title, req.Status)
	}
	return title, message
}

func renderEmail(title, message string, req *request.Request) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, map[string]interface{}{
		"Title":        title,
		"Message":      message,
		"RequestNo":    req.RequestNo,
		"RequestTitle": req.Title,
		"CustomerName": req.CustomerName,
		"Status":       req.Status,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
