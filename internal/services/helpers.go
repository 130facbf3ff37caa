package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

const escalationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Emergency Job Alert</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; background-color: #fcf8e3; color: #8a6d3b; margin: 0; padding: 20px; }
  .container { max-width: 600px; margin: auto; background: #fff; border: 1px solid #faebcc; border-radius: 8px; }
  .header { background-color: #fcf8e3; padding: 15px 20px; border-bottom: 1px solid #faebcc; }
  .header h1 { margin: 0; font-size: 20px; color: #8a6d3b; }
  .content { padding: 20px; }
  .content p { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { padding: 8px; border-bottom: 1px solid #eee; }
  li:last-child { border-bottom: none; }
  strong { color: #333; }
  .button-container { text-align: center; margin: 20px 0; }
  .button {
    background-color: #337ab7;
    color: white !important;
    padding: 12px 25px;
    text-decoration: none;
    border-radius: 5px;
    font-weight: bold;
    display: inline-block;
  }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>An emergency job has been open with no bids for too long. Please review immediately.</p>
      <ul>
        <li><strong>Job:</strong> %s</li>
        <li><strong>Location:</strong> %s</li>
        <li><strong>Posted:</strong> %s</li>
        <li><strong>Open For:</strong> %s</li>
        <li><strong>Timestamp (UTC):</strong> %s</li>
      </ul>
      <div class="button-container">
        <a href="%s" class="button">View Job</a>
      </div>
    </div>
  </div>
</body>
</html>`

/*
notifyOnCall alerts the operations on-call contact about a stale emergency
job over SMS and email. Either client may be nil (local runs without
credentials); the corresponding channel is skipped with a warning.
*/
func notifyOnCall(
	appURL string,
	job *models.Job,
	twClient *twilio.RestClient,
	sgClient *sendgrid.Client,
	fromPhone string,
	fromEmail string,
	onCallPhone string,
	onCallEmail string,
	orgName string,
	sendgridSandbox bool,
) {
	openFor := time.Since(job.CreatedAt).Round(time.Minute)
	subject := fmt.Sprintf("Emergency Job Unclaimed: %s", job.Title)
	jobLink := fmt.Sprintf("%s/api/v1/jobs/%s", appURL, job.ID)

	plainTextBody := fmt.Sprintf(
		"Emergency job has no bids.\n\nJob: %s\nLocation: %s\nPosted: %s\nOpen For: %s\n\nView: %s",
		job.Title,
		job.Location,
		job.CreatedAt.Format(time.RFC1123Z),
		openFor,
		jobLink,
	)

	htmlBody := fmt.Sprintf(
		escalationEmailHTML,
		subject,
		job.Title,
		job.Location,
		job.CreatedAt.Format(time.RFC1123Z),
		openFor.String(),
		time.Now().UTC().Format(time.RFC1123Z),
		jobLink,
	)

	if twClient != nil {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(onCallPhone)
		params.SetFrom(fromPhone)
		params.SetBody(subject + " :: " + plainTextBody)
		if _, smsErr := twClient.Api.CreateMessage(params); smsErr != nil {
			utils.Logger.WithError(smsErr).Warnf("Failed to send escalation SMS for job %s", job.ID)
		}
	} else {
		utils.Logger.Warnf("Twilio client is nil, skipping escalation SMS for job %s", job.ID)
	}

	if sgClient != nil {
		from := mail.NewEmail(orgName, fromEmail)
		to := mail.NewEmail("On-Call Operations", onCallEmail)
		msg := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)
		msg.TrackingSettings = &mail.TrackingSettings{
			ClickTracking: &mail.ClickTrackingSetting{
				Enable: utils.Ptr(false),
			},
		}
		if sendgridSandbox {
			ms := mail.NewMailSettings()
			ms.SetSandboxMode(mail.NewSetting(true))
			msg.MailSettings = ms
		}
		if _, sgErr := sgClient.Send(msg); sgErr != nil {
			utils.Logger.WithError(sgErr).Warnf("Failed to send escalation email for job %s", job.ID)
		}
	} else {
		utils.Logger.Warnf("SendGrid client is nil, skipping escalation email for job %s", job.ID)
	}
}
