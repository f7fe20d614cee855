package notification

import (
	"bytes"
	"html/template"
)

const signature = `<p>Regards,<br>{{.Team}}</p>`

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`<html><body>
<h2>Welcome {{.FullName}}!</h2>
<p>Your account has been created successfully.</p>
<p><strong>Employee ID:</strong> {{.EmployeeID}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Temporary Password:</strong> {{.TempPassword}}</p>
<p>Please change your password after first login.</p>
` + signature + `
</body></html>`))

	passwordResetTmpl = template.Must(template.New("password_reset").Parse(`<html><body>
<h2>Password Reset Request</h2>
<p>Your OTP for password reset is: <strong>{{.Code}}</strong></p>
<p>This OTP is valid for {{.ValidMinutes}} minutes.</p>
<p>If you didn't request this, please ignore this email.</p>
` + signature + `
</body></html>`))

	leaveDecisionTmpl = template.Must(template.New("leave_decision").Parse(`<html><body>
<h2>Leave Request {{.StatusTitle}}</h2>
<p>Your leave request from {{.StartDate}} to {{.EndDate}} has been {{.Status}}.</p>
<p><strong>Leave Type:</strong> {{.LeaveType}}</p>
<p><strong>Days:</strong> {{.DaysCount}}</p>
` + signature + `
</body></html>`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
