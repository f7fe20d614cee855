package notification

import (
	"context"
	"fmt"
	"html/template"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultTeam = "Priacc Innovations HR Team"

type WelcomeMail struct {
	To           string
	FullName     string
	EmployeeID   string
	TempPassword string
}

type PasswordResetMail struct {
	To           string
	Code         string
	ValidMinutes int
}

type LeaveDecisionMail struct {
	To        string
	LeaveType string
	StartDate string
	EndDate   string
	DaysCount int
	Status    string
}

// Gateway sends transactional mail. Every method is best-effort: it reports
// whether the message left the process and never returns an error.
//
//go:generate mockgen -source=notification.go -destination=mock/notification_mock.go -package=mock
type Gateway interface {
	SendWelcome(ctx context.Context, mail WelcomeMail) bool
	SendPasswordReset(ctx context.Context, mail PasswordResetMail) bool
	SendLeaveDecision(ctx context.Context, mail LeaveDecisionMail) bool
}

type gateway struct {
	sender Sender
	team   string
	logger *zap.Logger
}

func NewGateway(sender Sender, logger ...*zap.Logger) Gateway {
	l := zap.L().Named("notification.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.gateway")
	}
	return &gateway{sender: sender, team: defaultTeam, logger: l}
}

func (g *gateway) SendWelcome(ctx context.Context, mail WelcomeMail) bool {
	return g.deliver(ctx, mail.To, "Welcome to Priacc Innovations", welcomeTmpl, struct {
		WelcomeMail
		Email string
		Team  string
	}{mail, mail.To, g.team})
}

func (g *gateway) SendPasswordReset(ctx context.Context, mail PasswordResetMail) bool {
	if mail.ValidMinutes == 0 {
		mail.ValidMinutes = 10
	}
	return g.deliver(ctx, mail.To, "Password Reset OTP - Priacc Innovations", passwordResetTmpl, struct {
		PasswordResetMail
		Team string
	}{mail, "Priacc Innovations Team"})
}

func (g *gateway) SendLeaveDecision(ctx context.Context, mail LeaveDecisionMail) bool {
	title := cases.Title(language.English).String(mail.Status)
	return g.deliver(ctx, mail.To, fmt.Sprintf("Leave Request %s", title), leaveDecisionTmpl, struct {
		LeaveDecisionMail
		StatusTitle string
		Team        string
	}{mail, title, g.team})
}

func (g *gateway) deliver(ctx context.Context, to, subject string, tmpl *template.Template, data any) bool {
	log := contextutil.GetLogger(ctx, g.logger)

	if g.sender == nil {
		log.Info("smtp not configured, skipping email",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return false
	}

	body, err := render(tmpl, data)
	if err != nil {
		log.Error("render email failed", zap.String("template", tmpl.Name()), zap.Error(err))
		return false
	}

	if err := g.sender.Send(ctx, to, subject, body); err != nil {
		degraded := apperror.Degraded("smtp", err)
		log.Warn("send email failed",
			zap.String("code", degraded.Code),
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}

	log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return true
}
